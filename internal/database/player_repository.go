package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kovacsmate/leaguepulse/internal/domain"
)

type PlayerRepo struct {
	pool *pgxpool.Pool
}

func NewPlayerRepo(pool *pgxpool.Pool) *PlayerRepo {
	return &PlayerRepo{pool: pool}
}

func (r *PlayerRepo) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, age, email
		FROM players
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]domain.Player, 0)
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}

	return players, nil
}

func (r *PlayerRepo) GetByID(ctx context.Context, id int) (*domain.Player, error) {
	var p domain.Player
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, age, email
		FROM players
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Age, &p.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepo) Create(ctx context.Context, np domain.NewPlayer) (*domain.Player, error) {
	var p domain.Player
	err := r.pool.QueryRow(ctx, `
		INSERT INTO players (name, age, email)
		VALUES ($1, $2, $3)
		RETURNING id, name, age, email
	`, np.Name, np.Age, np.Email).Scan(&p.ID, &p.Name, &p.Age, &p.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepo) Update(ctx context.Context, id int, np domain.NewPlayer) (*domain.Player, error) {
	var p domain.Player
	err := r.pool.QueryRow(ctx, `
		UPDATE players
		SET name = $1, age = $2, email = $3
		WHERE id = $4
		RETURNING id, name, age, email
	`, np.Name, np.Age, np.Email, id).Scan(&p.ID, &p.Name, &p.Age, &p.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
