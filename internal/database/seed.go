package database

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	faker "github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedIfEmpty populates demo league data on a fresh database. It is a no-op
// when any club already exists, so restarts do not duplicate data.
func SeedIfEmpty(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var clubCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM clubs`).Scan(&clubCount); err != nil {
		return fmt.Errorf("failed to count clubs: %w", err)
	}
	if clubCount > 0 {
		return nil
	}

	slog.Info("Seeding demo league data")

	if err := seedLeague(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	slog.Info("Demo league data seeded")
	return nil
}

func seedLeague(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO seasons (name, start_date, end_date, is_active)
		VALUES ('2025 Ősz', '2025-09-01', '2025-12-15', FALSE)
	`)
	if err != nil {
		return fmt.Errorf("failed to seed seasons: %w", err)
	}

	var seasonID int
	err = tx.QueryRow(ctx, `
		INSERT INTO seasons (name, start_date, end_date, is_active)
		VALUES ('2026 Tavasz', '2026-02-01', '2026-05-31', TRUE)
		RETURNING id
	`).Scan(&seasonID)
	if err != nil {
		return fmt.Errorf("failed to seed active season: %w", err)
	}

	clubs := []struct{ name, address string }{
		{"BEAC", "1117 Budapest, Bogdánfy u. 10."},
		{"MAFC", "1111 Budapest, Műegyetem rkp. 3."},
	}
	clubIDs := make([]int, len(clubs))
	for i, c := range clubs {
		err := tx.QueryRow(ctx, `
			INSERT INTO clubs (name, address) VALUES ($1, $2) RETURNING id
		`, c.name, c.address).Scan(&clubIDs[i])
		if err != nil {
			return fmt.Errorf("failed to seed club %s: %w", c.name, err)
		}
	}

	teams := []struct {
		clubIdx  int
		name     string
		division string
	}{
		{0, "BEAC I.", "NB I."},
		{0, "BEAC II.", "Budapest I."},
		{1, "MAFC I.", "NB I."},
		{1, "MAFC II.", "Budapest I."},
	}
	teamIDs := make([]int, len(teams))
	for i, t := range teams {
		err := tx.QueryRow(ctx, `
			INSERT INTO teams (club_id, name, division) VALUES ($1, $2, $3) RETURNING id
		`, clubIDs[t.clubIdx], t.name, t.division).Scan(&teamIDs[i])
		if err != nil {
			return fmt.Errorf("failed to seed team %s: %w", t.name, err)
		}
	}

	// Four players per team, captain first.
	rosterNames := make(map[int][]string)
	for _, teamID := range teamIDs {
		for i := range 4 {
			firstName := faker.FirstName()
			lastName := faker.LastName()

			var userID int
			err := tx.QueryRow(ctx, `
				INSERT INTO users (email, password_hash, first_name, last_name)
				VALUES ($1, 'pw', $2, $3)
				RETURNING id
			`, strings.ToLower(faker.Username())+"@test.com", firstName, lastName).Scan(&userID)
			if err != nil {
				return fmt.Errorf("failed to seed user: %w", err)
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO team_members (team_id, user_id, is_captain, joined_at)
				VALUES ($1, $2, $3, $4)
			`, teamID, userID, i == 0, time.Now())
			if err != nil {
				return fmt.Errorf("failed to seed team member: %w", err)
			}

			rosterNames[teamID] = append(rosterNames[teamID], lastName+" "+firstName)
		}
	}

	pairings := []struct {
		home, guest int // indexes into teamIDs
		round       int
	}{
		{0, 2, 1}, {2, 0, 2},
		{1, 3, 3}, {3, 1, 4},
	}

	for _, p := range pairings {
		homeID, guestID := teamIDs[p.home], teamIDs[p.guest]

		var matchID int
		err := tx.QueryRow(ctx, `
			INSERT INTO matches (season_id, round_number, home_team_id, guest_team_id,
			                     home_team_score, guest_team_score, match_date, status, location)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'finished', 'Sportcsarnok')
			RETURNING id
		`, seasonID, p.round, homeID, guestID,
			5+rand.IntN(6), 5+rand.IntN(6),
			time.Now().AddDate(0, 0, p.round*7)).Scan(&matchID)
		if err != nil {
			return fmt.Errorf("failed to seed match: %w", err)
		}

		home := rosterNames[homeID]
		guest := rosterNames[guestID]
		for i := range 4 {
			if err := seedIndividualGame(ctx, tx, matchID, home[i], guest[i]); err != nil {
				return err
			}
		}
	}

	return nil
}

// seedIndividualGame plays out a best-of-five game with plausible set scores.
func seedIndividualGame(ctx context.Context, tx pgx.Tx, matchID int, homePlayer, guestPlayer string) error {
	homeSets, guestSets := 0, 0
	var scores []string

	for homeSets < 3 && guestSets < 3 {
		winPoints := 11
		if rand.IntN(11) >= 8 {
			winPoints = 12 + rand.IntN(4)
		}
		lossPoints := winPoints - 2
		if winPoints == 11 {
			lossPoints = rand.IntN(10)
		}

		if rand.IntN(2) == 0 {
			homeSets++
			scores = append(scores, fmt.Sprintf("%d-%d", winPoints, lossPoints))
		} else {
			guestSets++
			scores = append(scores, fmt.Sprintf("%d-%d", lossPoints, winPoints))
		}
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO individual_matches (match_id, home_player_name, guest_player_name,
		                                home_score, guest_score, home_sets_won, guest_sets_won, set_scores)
		VALUES ($1, $2, $3, $4, $5, $4, $5, $6)
	`, matchID, homePlayer, guestPlayer, homeSets, guestSets, strings.Join(scores, ", "))
	if err != nil {
		return fmt.Errorf("failed to seed individual game: %w", err)
	}
	return nil
}
