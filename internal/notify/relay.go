package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kovacsmate/leaguepulse/internal/metrics"
)

const (
	queueSize       = 64
	drainTimeout    = 5 * time.Second
	deliveryTimeout = 15 * time.Second
)

type notification struct {
	token string
	title string
	body  string
}

// Relay queues notifications and delivers them in the background. Delivery is
// fire and forget: a failed send is logged and dropped, never retried, and
// never surfaces to the caller that enqueued it.
type Relay struct {
	client   *Client
	queue    chan notification
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewRelay(client *Client) *Relay {
	r := &Relay{
		client: client,
		queue:  make(chan notification, queueSize),
		done:   make(chan struct{}),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Enqueue queues a notification for delivery. Non-blocking: if the queue is
// full the notification is dropped and counted.
func (r *Relay) Enqueue(token, title, body string) {
	select {
	case r.queue <- notification{token: token, title: title, body: body}:
		metrics.NotificationQueueDepth.Set(float64(len(r.queue)))
	default:
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		slog.Warn("Notification queue full, dropping", "title", title)
	}
}

// Stop drains the queue for a bounded time, then exits.
func (r *Relay) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		waitCh := make(chan struct{})
		go func() {
			r.wg.Wait()
			close(waitCh)
		}()

		select {
		case <-waitCh:
		case <-time.After(drainTimeout):
			slog.Warn("Notification relay stop timeout exceeded")
		}
	})
}

func (r *Relay) run() {
	defer r.wg.Done()

	for {
		select {
		case n := <-r.queue:
			r.deliver(n)
			metrics.NotificationQueueDepth.Set(float64(len(r.queue)))
		case <-r.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case n := <-r.queue:
					r.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (r *Relay) deliver(n notification) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	slog.Info("Sending push notification", "title", n.title)

	if err := r.client.Send(ctx, n.token, n.title, n.body); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		slog.Error("Push notification failed", "title", n.title, "error", err)
		return
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	slog.Info("Push notification sent", "title", n.title)
}

// NoopSender drops notifications, used when no FCM server key is configured.
type NoopSender struct{}

func (NoopSender) Enqueue(_, title, _ string) {
	slog.Warn("FCM not configured, dropping notification", "title", title)
}
