package domain

import "context"

// Member is one roster entry of a team.
type Member struct {
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	IsCaptain bool   `json:"isCaptain"`
}

// TeamStanding is a team with its roster and the record computed from
// finished matches (two points per win, one per draw).
type TeamStanding struct {
	TeamID        int      `json:"teamId"`
	TeamName      string   `json:"teamName"`
	ClubName      string   `json:"clubName"`
	Division      *string  `json:"division"`
	Members       []Member `json:"members"`
	MatchesPlayed int      `json:"matchesPlayed"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	Draws         int      `json:"draws"`
	Points        int      `json:"points"`
}

// IndividualGame is one player-vs-player game inside a team match.
type IndividualGame struct {
	ID              int    `json:"id"`
	HomePlayerName  string `json:"homePlayerName"`
	GuestPlayerName string `json:"guestPlayerName"`
	HomeScore       int    `json:"homeScore"`
	GuestScore      int    `json:"guestScore"`
}

// MatchParticipant is a player application for a match roster.
// TeamSide is HOME or GUEST; Status is APPLIED or SELECTED.
type MatchParticipant struct {
	ID         int    `json:"id"`
	PlayerName string `json:"playerName"`
	TeamSide   string `json:"teamSide"`
	Status     string `json:"status"`
}

// Match is a team match with its embedded individual games and participants.
type Match struct {
	ID              int                `json:"id"`
	RoundNumber     int                `json:"roundNumber"`
	HomeTeamName    string             `json:"homeTeamName"`
	GuestTeamName   string             `json:"guestTeamName"`
	HomeScore       int                `json:"homeScore"`
	GuestScore      int                `json:"guestScore"`
	Date            string             `json:"date"`
	Status          string             `json:"status"`
	Location        string             `json:"location"`
	IndividualGames []IndividualGame   `json:"individualMatches"`
	Participants    []MatchParticipant `json:"participants"`
}

// TeamRepository abstracts team persistence.
type TeamRepository interface {
	ListStandings(ctx context.Context) ([]TeamStanding, error)
}

// MatchRepository abstracts match persistence. A nil round lists all matches.
type MatchRepository interface {
	List(ctx context.Context, round *int) ([]Match, error)
}
