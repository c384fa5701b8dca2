// Package app provides the application service layer.
//
// Orchestrates use cases: player CRUD with change-event broadcasting, league
// queries, device-token registration and push-notification dispatch. Sits
// between HTTP handlers and domain repositories. Depends on domain interfaces,
// not concrete implementations.
package app
