package domain

import "context"

// AppService is the application layer contract. Handlers route all operations through here.
type AppService interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	GetPlayer(ctx context.Context, id int) (*Player, error)
	CreatePlayer(ctx context.Context, p NewPlayer) (*Player, error)
	UpdatePlayer(ctx context.Context, id int, p NewPlayer) (*Player, error)
	DeletePlayer(ctx context.Context, id int) error

	ListTeams(ctx context.Context) ([]TeamStanding, error)
	ListMatches(ctx context.Context, round *int) ([]Match, error)

	RegisterDeviceToken(ctx context.Context, email, token string) error
	SendNotification(ctx context.Context, targetEmail, title, body string) error
}
