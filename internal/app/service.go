package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kovacsmate/leaguepulse/internal/domain"
	apperrors "github.com/kovacsmate/leaguepulse/internal/errors"
	"github.com/kovacsmate/leaguepulse/internal/logging"
)

// Service is the application layer, the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	players  domain.PlayerRepository
	teams    domain.TeamRepository
	matches  domain.MatchRepository
	tokens   domain.DeviceTokenRepository
	events   domain.EventSink
	notifier domain.NotificationSender
}

// NewService creates the application layer service.
func NewService(
	players domain.PlayerRepository,
	teams domain.TeamRepository,
	matches domain.MatchRepository,
	tokens domain.DeviceTokenRepository,
	events domain.EventSink,
	notifier domain.NotificationSender,
) *Service {
	return &Service{
		players:  players,
		teams:    teams,
		matches:  matches,
		tokens:   tokens,
		events:   events,
		notifier: notifier,
	}
}

func (s *Service) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	return s.players.List(ctx)
}

func (s *Service) GetPlayer(ctx context.Context, id int) (*domain.Player, error) {
	return s.players.GetByID(ctx, id)
}

// CreatePlayer stores a new player and broadcasts the creation to WebSocket
// clients. The broadcast happens after the write committed, so subscribers
// never see an entity that does not exist.
func (s *Service) CreatePlayer(ctx context.Context, np domain.NewPlayer) (*domain.Player, error) {
	if err := validatePlayer(np); err != nil {
		return nil, err
	}

	player, err := s.players.Create(ctx, np)
	if err != nil {
		return nil, err
	}

	if err := s.publish(domain.PlayerCreated(*player)); err != nil {
		return nil, err
	}
	logging.WithPlayer(player.ID).Info("Player created")
	return player, nil
}

func (s *Service) UpdatePlayer(ctx context.Context, id int, np domain.NewPlayer) (*domain.Player, error) {
	if err := validatePlayer(np); err != nil {
		return nil, err
	}

	player, err := s.players.Update(ctx, id, np)
	if err != nil {
		return nil, err
	}

	if err := s.publish(domain.PlayerUpdated(*player)); err != nil {
		return nil, err
	}
	logging.WithPlayer(player.ID).Info("Player updated")
	return player, nil
}

// DeletePlayer removes a player. Deleting an unknown ID returns
// ErrPlayerNotFound and broadcasts nothing.
func (s *Service) DeletePlayer(ctx context.Context, id int) error {
	if err := s.players.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.publish(domain.PlayerDeleted(id)); err != nil {
		return err
	}
	logging.WithPlayer(id).Info("Player deleted")
	return nil
}

func (s *Service) ListTeams(ctx context.Context) ([]domain.TeamStanding, error) {
	return s.teams.ListStandings(ctx)
}

func (s *Service) ListMatches(ctx context.Context, round *int) ([]domain.Match, error) {
	return s.matches.List(ctx, round)
}

func (s *Service) RegisterDeviceToken(ctx context.Context, email, token string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.ValidationError("email must not be empty")
	}
	if strings.TrimSpace(token) == "" {
		return apperrors.ValidationError("token must not be empty")
	}

	if err := s.tokens.Upsert(ctx, email, token); err != nil {
		return err
	}

	slog.Info("Device token registered", "email", email)
	return nil
}

// SendNotification resolves the recipient's device token and hands the message
// to the relay. Delivery is fire and forget; only an unknown recipient is an
// error.
func (s *Service) SendNotification(ctx context.Context, targetEmail, title, body string) error {
	token, err := s.tokens.GetByEmail(ctx, targetEmail)
	if err != nil {
		return err
	}

	s.notifier.Enqueue(token, title, body)
	slog.Info("Notification queued", "title", title)
	return nil
}

// publish broadcasts a change event. The only error Broadcast can return is a
// serialization failure, which fails the request. The write itself stays
// committed.
func (s *Service) publish(event domain.Event) error {
	if err := s.events.Broadcast(event); err != nil {
		logging.WithError(err).Error("Failed to broadcast change event", "event_type", string(event.Type))
		return apperrors.InternalError("failed to broadcast change event", err)
	}
	return nil
}

func validatePlayer(np domain.NewPlayer) error {
	if strings.TrimSpace(np.Name) == "" {
		return apperrors.ValidationError("name must not be empty")
	}
	if strings.TrimSpace(np.Email) == "" {
		return apperrors.ValidationError("email must not be empty")
	}
	if np.Age != nil && (*np.Age < 0 || *np.Age > 150) {
		return apperrors.ValidationError("age must be between 0 and 150")
	}
	return nil
}
