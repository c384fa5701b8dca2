package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kovacsmate/leaguepulse/internal/domain"
)

type DeviceTokenRepo struct {
	pool *pgxpool.Pool
}

func NewDeviceTokenRepo(pool *pgxpool.Pool) *DeviceTokenRepo {
	return &DeviceTokenRepo{pool: pool}
}

// Upsert stores the token for an email, replacing any previous registration.
func (r *DeviceTokenRepo) Upsert(ctx context.Context, email, token string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO fcm_tokens (email, token)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET token = EXCLUDED.token
	`, email, token)
	if err != nil {
		return fmt.Errorf("failed to upsert device token: %w", err)
	}
	return nil
}

func (r *DeviceTokenRepo) GetByEmail(ctx context.Context, email string) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx, `
		SELECT token FROM fcm_tokens WHERE email = $1
	`, email).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get device token: %w", err)
	}
	return token, nil
}
