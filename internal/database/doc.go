// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and tern for migrations embedded in the binary.
// Repositories implement domain interfaces: PlayerRepository, DeviceTokenRepository,
// TeamRepository, MatchRepository.
package database
