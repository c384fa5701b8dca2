package server

import (
	"errors"
	"net/http"

	"github.com/kovacsmate/leaguepulse/internal/domain"
	apperrors "github.com/kovacsmate/leaguepulse/internal/errors"
	"github.com/labstack/echo/v4"
)

type tokenRegistration struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type sendNotificationRequest struct {
	TargetEmail string `json:"targetEmail"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

func (s *Server) handleRegisterToken(c echo.Context) error {
	var reg tokenRegistration
	if err := c.Bind(&reg); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	if err := s.app.RegisterDeviceToken(c.Request().Context(), reg.Email, reg.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSendNotification(c echo.Context) error {
	var req sendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	err := s.app.SendNotification(c.Request().Context(), req.TargetEmail, req.Title, req.Body)
	if errors.Is(err, domain.ErrTokenNotFound) {
		return apperrors.NotFoundError("no device token registered for " + req.TargetEmail)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}
