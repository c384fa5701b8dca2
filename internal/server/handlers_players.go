package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kovacsmate/leaguepulse/internal/domain"
	apperrors "github.com/kovacsmate/leaguepulse/internal/errors"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListPlayers(c echo.Context) error {
	players, err := s.app.ListPlayers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, players)
}

func (s *Server) handleGetPlayer(c echo.Context) error {
	id, err := parsePlayerID(c)
	if err != nil {
		return err
	}

	player, err := s.app.GetPlayer(c.Request().Context(), id)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return apperrors.NotFoundError("player not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, player)
}

func (s *Server) handleCreatePlayer(c echo.Context) error {
	var np domain.NewPlayer
	if err := c.Bind(&np); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	player, err := s.app.CreatePlayer(c.Request().Context(), np)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, player)
}

func (s *Server) handleUpdatePlayer(c echo.Context) error {
	id, err := parsePlayerID(c)
	if err != nil {
		return err
	}

	var np domain.NewPlayer
	if err := c.Bind(&np); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	player, err := s.app.UpdatePlayer(c.Request().Context(), id, np)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return apperrors.NotFoundError("player not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(c echo.Context) error {
	id, err := parsePlayerID(c)
	if err != nil {
		return err
	}

	err = s.app.DeletePlayer(c.Request().Context(), id)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return apperrors.NotFoundError("player not found")
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func parsePlayerID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperrors.ValidationError("invalid player ID")
	}
	return id, nil
}
