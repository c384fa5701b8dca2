package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	notificationRatePerSecond = 1
	notificationBurst         = 5
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Player CRUD
	s.echo.GET("/players", s.handleListPlayers)
	s.echo.GET("/players/:id", s.handleGetPlayer)
	s.echo.POST("/players", s.handleCreatePlayer)
	s.echo.PUT("/players/:id", s.handleUpdatePlayer)
	s.echo.DELETE("/players/:id", s.handleDeletePlayer)

	// League queries
	s.echo.GET("/teams", s.handleListTeams)
	s.echo.GET("/matches", s.handleListMatches)

	// Push notifications (sending is rate limited per client IP)
	s.echo.POST("/register_fcm_token", s.handleRegisterToken)
	s.echo.POST("/send_fcm_notification", s.handleSendNotification,
		newRateLimiter(notificationRatePerSecond, notificationBurst))

	// Change-event stream
	s.echo.GET("/ws/players", s.handleWebSocket)
}
