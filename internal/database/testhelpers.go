package database

import (
	"context"
	"testing"

	"github.com/kovacsmate/leaguepulse/internal/domain"
	"github.com/stretchr/testify/require"
)

// CreateTestPlayer is a helper that creates a player with the given fields.
// Returns the created player.
func CreateTestPlayer(t *testing.T, repo *PlayerRepo, name string, age *int, email string) *domain.Player {
	t.Helper()

	ctx := context.Background()
	player, err := repo.Create(ctx, domain.NewPlayer{Name: name, Age: age, Email: email})
	require.NoError(t, err)
	require.Positive(t, player.ID)

	return player
}

// RegisterTestToken is a helper that registers a device token for an email.
func RegisterTestToken(t *testing.T, repo *DeviceTokenRepo, email, token string) {
	t.Helper()

	err := repo.Upsert(context.Background(), email, token)
	require.NoError(t, err)
}
