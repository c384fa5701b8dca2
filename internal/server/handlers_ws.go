package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The demo dashboard is served from arbitrary origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket upgrades the connection and subscribes it to the
// change-event stream. The read pump discards client frames; its only job is
// to notice the connection dying (or the keepalive deadline expiring) and
// unregister.
func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if err := s.broadcaster.Register(conn); err != nil {
		slog.Error("Failed to register with broadcaster", "error", err)
		_ = conn.Close()
		return nil
	}

	slog.Info("WebSocket client connected", "remote_addr", conn.RemoteAddr())

	defer func() {
		s.broadcaster.Unregister(conn)
		slog.Info("WebSocket client disconnected", "remote_addr", conn.RemoteAddr())
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
