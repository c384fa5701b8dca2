package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/kovacsmate/leaguepulse/internal/domain"
	"github.com/kovacsmate/leaguepulse/internal/metrics"
)

const (
	commandTimeout = 5 * time.Second  // Actor command timeout
	stopTimeout    = 10 * time.Second // Graceful shutdown timeout
)

// broadcasterCmd is the command interface for the Broadcaster actor.
type broadcasterCmd interface{ isBroadcasterCmd() }

type baseBroadcasterCmd struct{}

func (baseBroadcasterCmd) isBroadcasterCmd() {}

type registerCmd struct {
	baseBroadcasterCmd
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseBroadcasterCmd
	connection *websocket.Conn
}

type broadcastCmd struct {
	baseBroadcasterCmd
	eventType domain.EventType
	data      []byte
}

type clientCountCmd struct {
	baseBroadcasterCmd
	replyChannel chan int
}

type stopCmd struct {
	baseBroadcasterCmd
}

// Broadcaster manages WebSocket connections and fans change events out to
// every connected client. All registry state is owned by a single goroutine;
// the exported methods communicate with it through the command channel.
type Broadcaster struct {
	cmdCh       chan broadcasterCmd
	clock       clockwork.Clock
	clients     map[*websocket.Conn]*clientWriter
	done        chan struct{}
	stopTimeout time.Duration
}

// NewBroadcaster creates a broadcaster and starts its actor goroutine.
func NewBroadcaster(clock clockwork.Clock) *Broadcaster {
	b := &Broadcaster{
		cmdCh:       make(chan broadcasterCmd, 256),
		clock:       clock,
		clients:     make(map[*websocket.Conn]*clientWriter),
		done:        make(chan struct{}),
		stopTimeout: stopTimeout,
	}
	go b.run()
	return b
}

// Register adds a client connection. Registering an already-registered
// connection is a no-op. Returns an error only if the broadcaster is stuck.
func (b *Broadcaster) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	b.cmdCh <- registerCmd{connection: conn, errorChannel: errCh}

	// Use timeout to prevent blocking forever if broadcaster is stuck
	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a client connection. Unknown connections are ignored.
func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	b.cmdCh <- unregisterCmd{connection: conn}
}

// Broadcast serializes the event once and delivers the bytes to every
// registered client. Per-client delivery is best effort: a client whose
// send buffer is full misses the message but stays registered (its
// teardown happens through the connection lifecycle, not here). The only
// error this method returns is a serialization failure.
func (b *Broadcaster) Broadcast(event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	metrics.BroadcasterEventsTotal.WithLabelValues(string(event.Type)).Inc()
	b.cmdCh <- broadcastCmd{eventType: event.Type, data: data}
	return nil
}

// ClientCount returns the number of connected clients.
// Returns -1 if the command times out.
func (b *Broadcaster) ClientCount() int {
	replyCh := make(chan int, 1)
	b.cmdCh <- clientCountCmd{replyChannel: replyCh}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop shuts down the broadcaster, closing all client connections.
// Blocks until the broadcaster goroutine has exited or timeout is reached.
func (b *Broadcaster) Stop() {
	b.cmdCh <- stopCmd{}

	timeout := b.clock.NewTimer(b.stopTimeout)
	defer timeout.Stop()

	select {
	case <-b.done:
		slog.Info("Broadcaster stopped gracefully")
	case <-timeout.Chan():
		slog.Warn("Broadcaster stop timeout exceeded, forcing exit",
			"timeout", b.stopTimeout,
		)
		metrics.BroadcasterStopTimeoutsTotal.Inc()

		// Force goroutine exit
		close(b.done)

		slog.Error("Broadcaster goroutine may have leaked",
			"connected_clients", len(b.clients),
		)
	}
}

func (b *Broadcaster) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Broadcaster panic recovered", "panic", r)
			metrics.BroadcasterPanicsTotal.Inc()
			b.closeAllClients("broadcaster panic")
		}
	}()
	defer close(b.done)

	for cmd := range b.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			b.handleRegister(c)
		case unregisterCmd:
			b.handleUnregister(c)
		case broadcastCmd:
			b.handleBroadcast(c)
		case clientCountCmd:
			c.replyChannel <- len(b.clients)
		case stopCmd:
			b.handleStop()
			return
		default:
			slog.Warn("Broadcaster received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (b *Broadcaster) handleRegister(c registerCmd) {
	if _, exists := b.clients[c.connection]; exists {
		slog.Warn("Connection already registered, ignoring", "remote_addr", c.connection.RemoteAddr())
		c.errorChannel <- nil
		return
	}

	b.clients[c.connection] = newClientWriter(c.connection, b.clock)

	metrics.BroadcasterConnectedClients.Set(float64(len(b.clients)))
	slog.Debug("Client registered", "remote_addr", c.connection.RemoteAddr(), "total_clients", len(b.clients))
	c.errorChannel <- nil
}

func (b *Broadcaster) handleUnregister(c unregisterCmd) {
	cw, exists := b.clients[c.connection]
	if !exists {
		return
	}

	cw.stop()
	delete(b.clients, c.connection)

	metrics.BroadcasterConnectedClients.Set(float64(len(b.clients)))
	slog.Debug("Client unregistered", "remote_addr", c.connection.RemoteAddr(), "remaining_clients", len(b.clients))
}

func (b *Broadcaster) handleBroadcast(c broadcastCmd) {
	dropped := 0
	for conn, writer := range b.clients {
		select {
		case writer.sendChannel <- c.data:
		default:
			// Slow client: drop the message but keep the registration.
			// A dead connection is reaped by the keepalive, which closes
			// the transport and triggers an unregister from the handler.
			dropped++
			metrics.BroadcasterDroppedMessagesTotal.Inc()
			slog.Warn("Dropping event for slow client",
				"remote_addr", conn.RemoteAddr(),
				"event_type", string(c.eventType),
			)
		}
	}

	slog.Debug("Event broadcast",
		"event_type", string(c.eventType),
		"clients", len(b.clients),
		"dropped", dropped,
	)
}

func (b *Broadcaster) handleStop() {
	slog.Info("Broadcaster shutting down", "connected_clients", len(b.clients))
	b.closeAllClients("Server shutting down")
	slog.Info("Broadcaster shutdown complete")
}

// closeAllClients closes all client connections with the given reason.
// Used during panic recovery and graceful shutdown.
func (b *Broadcaster) closeAllClients(reason string) {
	for conn, cw := range b.clients {
		cw.stopGraceful(reason)
		delete(b.clients, conn)
	}
	metrics.BroadcasterConnectedClients.Set(0)
}
