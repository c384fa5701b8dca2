// Package notify delivers push notifications through Firebase Cloud Messaging.
//
// The Relay decouples HTTP handlers from FCM round trips: Enqueue is
// non-blocking and a worker goroutine drains the queue. When no server key is
// configured, NoopSender logs and drops instead.
package notify
