package domain

import "context"

// Player is a registered league player. Age is optional and serializes as an
// explicit null when unset, so the wire shape stays stable for clients.
type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Age   *int   `json:"age"`
	Email string `json:"email"`
}

// NewPlayer carries the client-supplied fields for create and update operations.
type NewPlayer struct {
	Name  string `json:"name"`
	Age   *int   `json:"age"`
	Email string `json:"email"`
}

// DeviceToken maps a player email to a push-notification device token.
type DeviceToken struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// PlayerRepository abstracts player persistence.
type PlayerRepository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id int) (*Player, error)
	Create(ctx context.Context, p NewPlayer) (*Player, error)
	Update(ctx context.Context, id int, p NewPlayer) (*Player, error)
	Delete(ctx context.Context, id int) error
}

// DeviceTokenRepository abstracts device-token persistence.
type DeviceTokenRepository interface {
	Upsert(ctx context.Context, email, token string) error
	GetByEmail(ctx context.Context, email string) (string, error)
}
