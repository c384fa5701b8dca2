package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kovacsmate/leaguepulse/internal/broadcast"
	"github.com/kovacsmate/leaguepulse/internal/config"
	"github.com/kovacsmate/leaguepulse/internal/domain"
	apperrors "github.com/kovacsmate/leaguepulse/internal/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	app         domain.AppService
	broadcaster *broadcast.Broadcaster
	pool        *pgxpool.Pool
	startTime   time.Time
}

func NewServer(cfg *config.Config, app domain.AppService, broadcaster *broadcast.Broadcaster, pool *pgxpool.Pool) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:        e,
		config:      cfg,
		app:         app,
		broadcaster: broadcaster,
		pool:        pool,
		startTime:   time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
