package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openconf/registration-backend/internal/model"
	"github.com/openconf/registration-backend/internal/repository"
)

type talkReq struct {
	SpeakerID uint64    `json:"speaker_id" validate:"required,gt=0"`
	Title     string    `json:"title" validate:"required,min=2,max=200"`
	Abstract  string    `json:"abstract" validate:"max=3000"`
	Room      string    `json:"room" validate:"max=100"`
	StartsAt  time.Time `json:"starts_at" validate:"required"`
	EndsAt    time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

// CreateTalk handles POST /v1/admin/talks.
func (h *AdminHandler) CreateTalk(c echo.Context) error {
	var req talkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := v.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Talk{
		SpeakerID: req.SpeakerID,
		Title:     req.Title,
		Abstract:  req.Abstract,
		Room:      req.Room,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}
	if err := h.Talks.Create(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "speaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create talk"})
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateTalk handles PUT /v1/admin/talks/:id.
func (h *AdminHandler) UpdateTalk(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req talkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := v.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Talk{
		ID:        id,
		SpeakerID: req.SpeakerID,
		Title:     req.Title,
		Abstract:  req.Abstract,
		Room:      req.Room,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}
	if err := h.Talks.Update(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "talk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// ListTalks handles GET /v1/admin/talks.
func (h *AdminHandler) ListTalks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Talks.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteTalk handles DELETE /v1/admin/talks/:id.
func (h *AdminHandler) DeleteTalk(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Talks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "talk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
