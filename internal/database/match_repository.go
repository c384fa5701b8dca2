package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kovacsmate/leaguepulse/internal/domain"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// List returns matches with their individual games and participants embedded.
// A nil round returns all matches.
func (r *MatchRepo) List(ctx context.Context, round *int) ([]domain.Match, error) {
	query := `
		SELECT m.id, m.round_number, ht.name, gt.name,
		       m.home_team_score, m.guest_team_score,
		       m.match_date, m.status, m.location
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams gt ON gt.id = m.guest_team_id
	`
	args := []any{}
	if round != nil {
		query += ` WHERE m.round_number = $1`
		args = append(args, *round)
	}
	query += ` ORDER BY m.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]domain.Match, 0)
	matchIDs := make([]int, 0)
	for rows.Next() {
		var m domain.Match
		var matchDate *time.Time
		var location *string
		if err := rows.Scan(&m.ID, &m.RoundNumber, &m.HomeTeamName, &m.GuestTeamName,
			&m.HomeScore, &m.GuestScore, &matchDate, &m.Status, &location); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if matchDate != nil {
			m.Date = matchDate.Format("2006-01-02T15:04:05")
		}
		if location != nil {
			m.Location = *location
		}
		m.IndividualGames = make([]domain.IndividualGame, 0)
		m.Participants = make([]domain.MatchParticipant, 0)
		matches = append(matches, m)
		matchIDs = append(matchIDs, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}

	if len(matches) == 0 {
		return matches, nil
	}

	games, err := r.individualGames(ctx, matchIDs)
	if err != nil {
		return nil, err
	}
	participants, err := r.matchParticipants(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	for i := range matches {
		m := &matches[i]
		if g, ok := games[m.ID]; ok {
			m.IndividualGames = g
		}
		if p, ok := participants[m.ID]; ok {
			m.Participants = p
		}
	}

	return matches, nil
}

func (r *MatchRepo) individualGames(ctx context.Context, matchIDs []int) (map[int][]domain.IndividualGame, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT match_id, id, home_player_name, guest_player_name, home_score, guest_score
		FROM individual_matches
		WHERE match_id = ANY($1)
		ORDER BY id
	`, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list individual games: %w", err)
	}
	defer rows.Close()

	games := make(map[int][]domain.IndividualGame)
	for rows.Next() {
		var matchID int
		var g domain.IndividualGame
		if err := rows.Scan(&matchID, &g.ID, &g.HomePlayerName, &g.GuestPlayerName, &g.HomeScore, &g.GuestScore); err != nil {
			return nil, fmt.Errorf("failed to scan individual game: %w", err)
		}
		games[matchID] = append(games[matchID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read individual games: %w", err)
	}

	return games, nil
}

func (r *MatchRepo) matchParticipants(ctx context.Context, matchIDs []int) (map[int][]domain.MatchParticipant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT match_id, id, player_name, team_side, status
		FROM match_participants
		WHERE match_id = ANY($1)
		ORDER BY id
	`, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list match participants: %w", err)
	}
	defer rows.Close()

	participants := make(map[int][]domain.MatchParticipant)
	for rows.Next() {
		var matchID int
		var p domain.MatchParticipant
		if err := rows.Scan(&matchID, &p.ID, &p.PlayerName, &p.TeamSide, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan match participant: %w", err)
		}
		participants[matchID] = append(participants[matchID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match participants: %w", err)
	}

	return participants, nil
}
