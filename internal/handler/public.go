package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openconf/registration-backend/internal/repository"
)

// PublicHandler serves the read-only data behind the site's speakers and
// schedule pages. No authentication.
type PublicHandler struct {
	Speakers *repository.SpeakerRepo
	Talks    *repository.TalkRepo
}

func NewPublicHandler(s *repository.SpeakerRepo, t *repository.TalkRepo) *PublicHandler {
	return &PublicHandler{Speakers: s, Talks: t}
}

// GetSpeakers handles GET /api/speakers.
func (h *PublicHandler) GetSpeakers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Speakers.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetSchedule handles GET /api/schedule: all talks ordered by start time.
func (h *PublicHandler) GetSchedule(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Talks.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
