// Package broadcast implements the WebSocket change-event broadcaster using the actor pattern.
//
// Write operations on the data publish a ChangeEvent, which the Broadcaster fans out to connected clients.
// Uses single goroutine + command channel (no mutexes). Per-connection write goroutines handle slow clients gracefully.
package broadcast
