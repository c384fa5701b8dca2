package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepo_ListStandings(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedIfEmpty(ctx, pool))

	repo := NewTeamRepo(pool)
	standings, err := repo.ListStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)

	for _, s := range standings {
		assert.NotEmpty(t, s.TeamName)
		assert.NotEmpty(t, s.ClubName)
		require.NotNil(t, s.Division)

		// Every seeded team plays a home and an away match.
		assert.Equal(t, 2, s.MatchesPlayed, "team %s", s.TeamName)
		assert.Equal(t, s.MatchesPlayed, s.Wins+s.Losses+s.Draws, "team %s", s.TeamName)
		assert.Equal(t, s.Wins*2+s.Draws, s.Points, "team %s", s.TeamName)

		require.Len(t, s.Members, 4, "team %s", s.TeamName)
		assert.True(t, s.Members[0].IsCaptain, "first member of %s should be captain", s.TeamName)
		for _, m := range s.Members[1:] {
			assert.False(t, m.IsCaptain)
		}
	}
}

func TestTeamRepo_ListStandings_Empty(t *testing.T) {
	pool := setupTestDB(t)

	repo := NewTeamRepo(pool)
	standings, err := repo.ListStandings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestMatchRepo_List(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedIfEmpty(ctx, pool))

	repo := NewMatchRepo(pool)
	matches, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	for _, m := range matches {
		assert.NotEmpty(t, m.HomeTeamName)
		assert.NotEmpty(t, m.GuestTeamName)
		assert.Equal(t, "finished", m.Status)
		assert.Equal(t, "Sportcsarnok", m.Location)
		assert.NotEmpty(t, m.Date)

		// Seeded matches carry four individual games each.
		require.Len(t, m.IndividualGames, 4)
		for _, g := range m.IndividualGames {
			winner := max(g.HomeScore, g.GuestScore)
			assert.Equal(t, 3, winner, "best-of-five game must end at three sets")
		}
	}
}

func TestMatchRepo_List_FilterByRound(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedIfEmpty(ctx, pool))

	repo := NewMatchRepo(pool)

	round := 1
	matches, err := repo.List(ctx, &round)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].RoundNumber)

	round = 99
	matches, err = repo.List(ctx, &round)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
