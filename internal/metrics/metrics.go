// Package metrics defines the Prometheus instruments shared across the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcaster metrics
var (
	// BroadcasterConnectedClients tracks the number of connected WebSocket clients
	BroadcasterConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcaster_connected_clients",
			Help: "Number of currently connected WebSocket clients",
		},
	)

	// BroadcasterEventsTotal tracks broadcast calls by event type
	BroadcasterEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcaster_events_total",
			Help: "Total change events broadcast, by event type",
		},
		[]string{"type"},
	)

	// BroadcasterDroppedMessagesTotal tracks messages dropped because a client buffer was full
	BroadcasterDroppedMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcaster_dropped_messages_total",
			Help: "Messages dropped because a client send buffer was full",
		},
	)

	// BroadcasterPanicsTotal tracks broadcaster panic recoveries
	BroadcasterPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcaster_panics_total",
			Help: "Total broadcaster panic recoveries",
		},
	)

	// BroadcasterStopTimeoutsTotal tracks broadcaster stops that exceeded timeout
	BroadcasterStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcaster_stop_timeouts_total",
			Help: "Broadcaster stops that exceeded timeout",
		},
	)
)

// WebSocket transport metrics
var (
	// WebSocketMessageSendDuration tracks message write latency
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// WebSocketPingFailures tracks keepalive ping failures
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total WebSocket keepalive ping failures",
		},
	)
)

// Notification relay metrics
var (
	// NotificationsTotal tracks relay deliveries by outcome
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Push notification deliveries by outcome",
		},
		[]string{"outcome"},
	)

	// NotificationQueueDepth tracks the relay queue depth
	NotificationQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notification_queue_depth",
			Help: "Current depth of the push notification queue",
		},
	)
)
