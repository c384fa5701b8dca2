package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/kovacsmate/leaguepulse/internal/broadcast"
	"github.com/kovacsmate/leaguepulse/internal/config"
	"github.com/kovacsmate/leaguepulse/internal/domain"
	apperrors "github.com/kovacsmate/leaguepulse/internal/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockAppService struct {
	listPlayersFn      func(ctx context.Context) ([]domain.Player, error)
	getPlayerFn        func(ctx context.Context, id int) (*domain.Player, error)
	createPlayerFn     func(ctx context.Context, np domain.NewPlayer) (*domain.Player, error)
	updatePlayerFn     func(ctx context.Context, id int, np domain.NewPlayer) (*domain.Player, error)
	deletePlayerFn     func(ctx context.Context, id int) error
	listTeamsFn        func(ctx context.Context) ([]domain.TeamStanding, error)
	listMatchesFn      func(ctx context.Context, round *int) ([]domain.Match, error)
	registerTokenFn    func(ctx context.Context, email, token string) error
	sendNotificationFn func(ctx context.Context, targetEmail, title, body string) error
}

func (m *mockAppService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	if m.listPlayersFn != nil {
		return m.listPlayersFn(ctx)
	}
	return []domain.Player{}, nil
}

func (m *mockAppService) GetPlayer(ctx context.Context, id int) (*domain.Player, error) {
	if m.getPlayerFn != nil {
		return m.getPlayerFn(ctx, id)
	}
	return nil, domain.ErrPlayerNotFound
}

func (m *mockAppService) CreatePlayer(ctx context.Context, np domain.NewPlayer) (*domain.Player, error) {
	if m.createPlayerFn != nil {
		return m.createPlayerFn(ctx, np)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) UpdatePlayer(ctx context.Context, id int, np domain.NewPlayer) (*domain.Player, error) {
	if m.updatePlayerFn != nil {
		return m.updatePlayerFn(ctx, id, np)
	}
	return nil, domain.ErrPlayerNotFound
}

func (m *mockAppService) DeletePlayer(ctx context.Context, id int) error {
	if m.deletePlayerFn != nil {
		return m.deletePlayerFn(ctx, id)
	}
	return domain.ErrPlayerNotFound
}

func (m *mockAppService) ListTeams(ctx context.Context) ([]domain.TeamStanding, error) {
	if m.listTeamsFn != nil {
		return m.listTeamsFn(ctx)
	}
	return []domain.TeamStanding{}, nil
}

func (m *mockAppService) ListMatches(ctx context.Context, round *int) ([]domain.Match, error) {
	if m.listMatchesFn != nil {
		return m.listMatchesFn(ctx, round)
	}
	return []domain.Match{}, nil
}

func (m *mockAppService) RegisterDeviceToken(ctx context.Context, email, token string) error {
	if m.registerTokenFn != nil {
		return m.registerTokenFn(ctx, email, token)
	}
	return nil
}

func (m *mockAppService) SendNotification(ctx context.Context, targetEmail, title, body string) error {
	if m.sendNotificationFn != nil {
		return m.sendNotificationFn(ctx, targetEmail, title, body)
	}
	return domain.ErrTokenNotFound
}

func newTestServer(t *testing.T, app domain.AppService) *Server {
	t.Helper()

	broadcaster := broadcast.NewBroadcaster(clockwork.NewRealClock())
	t.Cleanup(broadcaster.Stop)

	cfg := &config.Config{AppEnv: "test", Port: "8080"}
	return NewServer(cfg, app, broadcaster, nil)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

// --- Player handlers ---

func TestHandleListPlayers(t *testing.T) {
	age := 24
	app := &mockAppService{
		listPlayersFn: func(context.Context) ([]domain.Player, error) {
			return []domain.Player{
				{ID: 1, Name: "Kiss Péter", Age: &age, Email: "kiss@test.com"},
				{ID: 2, Name: "Nagy Anna", Email: "nagy@test.com"},
			}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodGet, "/players", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var players []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	require.Len(t, players, 2)
	assert.Equal(t, "Kiss Péter", players[0]["name"])

	// Unset age serializes as explicit null, not as a missing key.
	age2, present := players[1]["age"]
	assert.True(t, present)
	assert.Nil(t, age2)
}

func TestHandleGetPlayer(t *testing.T) {
	age := 31
	app := &mockAppService{
		getPlayerFn: func(_ context.Context, id int) (*domain.Player, error) {
			require.Equal(t, 5, id)
			return &domain.Player{ID: 5, Name: "Nagy Anna", Age: &age, Email: "nagy@test.com"}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodGet, "/players/5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var player map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	assert.Equal(t, float64(5), player["id"])
	assert.Equal(t, "Nagy Anna", player["name"])
}

func TestHandleGetPlayer_NotFound(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodGet, "/players/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetPlayer_InvalidID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodGet, "/players/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreatePlayer(t *testing.T) {
	app := &mockAppService{
		createPlayerFn: func(_ context.Context, np domain.NewPlayer) (*domain.Player, error) {
			return &domain.Player{ID: 7, Name: np.Name, Age: np.Age, Email: np.Email}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPost, "/players", `{"name":"Kiss Péter","age":24,"email":"kiss@test.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var player domain.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	assert.Equal(t, 7, player.ID)
	assert.Equal(t, "Kiss Péter", player.Name)
}

func TestHandleCreatePlayer_ValidationError(t *testing.T) {
	app := &mockAppService{
		createPlayerFn: func(_ context.Context, np domain.NewPlayer) (*domain.Player, error) {
			return nil, apperrors.ValidationError("name must not be empty")
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPost, "/players", `{"name":"","email":"x@test.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreatePlayer_MalformedBody(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodPost, "/players", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpdatePlayer(t *testing.T) {
	app := &mockAppService{
		updatePlayerFn: func(_ context.Context, id int, np domain.NewPlayer) (*domain.Player, error) {
			return &domain.Player{ID: id, Name: np.Name, Age: np.Age, Email: np.Email}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPut, "/players/3", `{"name":"Új Név","age":null,"email":"uj@test.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var player domain.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	assert.Equal(t, 3, player.ID)
	assert.Equal(t, "Új Név", player.Name)
	assert.Nil(t, player.Age)
}

func TestHandleUpdatePlayer_NotFound(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodPut, "/players/42", `{"name":"x","email":"x@test.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleUpdatePlayer_InvalidID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodPut, "/players/abc", `{"name":"x","email":"x@test.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDeletePlayer(t *testing.T) {
	var deletedID int
	app := &mockAppService{
		deletePlayerFn: func(_ context.Context, id int) error {
			deletedID = id
			return nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodDelete, "/players/5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, deletedID)
}

func TestHandleDeletePlayer_NotFound(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodDelete, "/players/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- League handlers ---

func TestHandleListTeams(t *testing.T) {
	division := "NB I."
	app := &mockAppService{
		listTeamsFn: func(context.Context) ([]domain.TeamStanding, error) {
			return []domain.TeamStanding{{
				TeamID:        1,
				TeamName:      "BEAC I.",
				ClubName:      "BEAC",
				Division:      &division,
				Members:       []domain.Member{{UserID: 1, Name: "Kiss Péter", IsCaptain: true}},
				MatchesPlayed: 2,
				Wins:          1,
				Draws:         1,
				Points:        3,
			}}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodGet, "/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var teams []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	require.Len(t, teams, 1)
	assert.Equal(t, "BEAC I.", teams[0]["teamName"])
	assert.Equal(t, float64(3), teams[0]["points"])
}

func TestHandleListMatches_RoundFilter(t *testing.T) {
	var gotRound *int
	app := &mockAppService{
		listMatchesFn: func(_ context.Context, round *int) ([]domain.Match, error) {
			gotRound = round
			return []domain.Match{}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodGet, "/matches?round=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotRound)
	assert.Equal(t, 2, *gotRound)

	rec = doRequest(t, srv, http.MethodGet, "/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotRound)
}

func TestHandleListMatches_InvalidRound(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodGet, "/matches?round=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Notification handlers ---

func TestHandleRegisterToken(t *testing.T) {
	var gotEmail, gotToken string
	app := &mockAppService{
		registerTokenFn: func(_ context.Context, email, token string) error {
			gotEmail, gotToken = email, token
			return nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPost, "/register_fcm_token", `{"email":"user@test.com","token":"device-token"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@test.com", gotEmail)
	assert.Equal(t, "device-token", gotToken)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleSendNotification(t *testing.T) {
	app := &mockAppService{
		sendNotificationFn: func(_ context.Context, targetEmail, title, body string) error {
			return nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPost, "/send_fcm_notification", `{"targetEmail":"user@test.com","title":"Hi","body":"There"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"sent"}`, rec.Body.String())
}

func TestHandleSendNotification_UnknownRecipient(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodPost, "/send_fcm_notification", `{"targetEmail":"nobody@test.com","title":"Hi","body":"There"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Health handlers ---

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleReadiness_NoDatabase(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
