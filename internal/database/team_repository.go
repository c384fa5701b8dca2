package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kovacsmate/leaguepulse/internal/domain"
)

type TeamRepo struct {
	pool *pgxpool.Pool
}

func NewTeamRepo(pool *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{pool: pool}
}

type teamRecord struct {
	played int
	wins   int
	draws  int
}

// ListStandings returns every team with its roster and the record computed
// from finished matches. Two points per win, one per draw.
func (r *TeamRepo) ListStandings(ctx context.Context) ([]domain.TeamStanding, error) {
	standings, err := r.listTeams(ctx)
	if err != nil {
		return nil, err
	}

	records, err := r.teamRecords(ctx)
	if err != nil {
		return nil, err
	}

	members, err := r.teamMembers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range standings {
		s := &standings[i]
		rec := records[s.TeamID]
		s.MatchesPlayed = rec.played
		s.Wins = rec.wins
		s.Draws = rec.draws
		s.Losses = rec.played - rec.wins - rec.draws
		s.Points = rec.wins*2 + rec.draws
		if m, ok := members[s.TeamID]; ok {
			s.Members = m
		}
	}

	return standings, nil
}

func (r *TeamRepo) listTeams(ctx context.Context) ([]domain.TeamStanding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.name, c.name, t.division
		FROM teams t
		JOIN clubs c ON c.id = t.club_id
		ORDER BY t.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	standings := make([]domain.TeamStanding, 0)
	for rows.Next() {
		s := domain.TeamStanding{Members: make([]domain.Member, 0)}
		if err := rows.Scan(&s.TeamID, &s.TeamName, &s.ClubName, &s.Division); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	return standings, nil
}

// teamRecords aggregates finished matches into per-team win/draw counts.
// A match where both sides scored equally counts as a draw for both teams.
func (r *TeamRepo) teamRecords(ctx context.Context) (map[int]teamRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id,
		       COUNT(m.id) AS played,
		       COUNT(*) FILTER (
		           WHERE (m.home_team_id = t.id AND m.home_team_score > m.guest_team_score)
		              OR (m.guest_team_id = t.id AND m.guest_team_score > m.home_team_score)
		       ) AS wins,
		       COUNT(*) FILTER (WHERE m.home_team_score = m.guest_team_score) AS draws
		FROM teams t
		JOIN matches m
		  ON (m.home_team_id = t.id OR m.guest_team_id = t.id)
		 AND m.status = 'finished'
		GROUP BY t.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute team records: %w", err)
	}
	defer rows.Close()

	records := make(map[int]teamRecord)
	for rows.Next() {
		var teamID int
		var rec teamRecord
		if err := rows.Scan(&teamID, &rec.played, &rec.wins, &rec.draws); err != nil {
			return nil, fmt.Errorf("failed to scan team record: %w", err)
		}
		records[teamID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team records: %w", err)
	}

	return records, nil
}

func (r *TeamRepo) teamMembers(ctx context.Context) (map[int][]domain.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tm.team_id, u.id, u.last_name || ' ' || u.first_name, tm.is_captain
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		ORDER BY tm.team_id, tm.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make(map[int][]domain.Member)
	for rows.Next() {
		var teamID int
		var m domain.Member
		if err := rows.Scan(&teamID, &m.UserID, &m.Name, &m.IsCaptain); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members[teamID] = append(members[teamID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team members: %w", err)
	}

	return members, nil
}
