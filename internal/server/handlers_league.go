package server

import (
	"net/http"
	"strconv"

	apperrors "github.com/kovacsmate/leaguepulse/internal/errors"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListTeams(c echo.Context) error {
	standings, err := s.app.ListTeams(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, standings)
}

func (s *Server) handleListMatches(c echo.Context) error {
	var round *int
	if raw := c.QueryParam("round"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("round must be an integer")
		}
		round = &parsed
	}

	matches, err := s.app.ListMatches(c.Request().Context(), round)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, matches)
}
