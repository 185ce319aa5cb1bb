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

type speakerReq struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Title    string `json:"title" validate:"required,max=150"`
	Bio      string `json:"bio" validate:"max=2000"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url,max=500"`
}

// CreateSpeaker handles POST /v1/admin/speakers.
func (h *AdminHandler) CreateSpeaker(c echo.Context) error {
	var req speakerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := v.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Speaker{Name: req.Name, Title: req.Title, Bio: req.Bio, PhotoURL: req.PhotoURL}
	if err := h.Speakers.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create speaker"})
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSpeaker handles PUT /v1/admin/speakers/:id.
func (h *AdminHandler) UpdateSpeaker(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req speakerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := v.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Speaker{ID: id, Name: req.Name, Title: req.Title, Bio: req.Bio, PhotoURL: req.PhotoURL}
	if err := h.Speakers.Update(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "speaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Speakers.GetByID(ctx, id)
	if err != nil {
		// The update itself succeeded; echo the written fields instead of
		// a zero-valued speaker.
		return c.JSON(http.StatusOK, s)
	}
	return c.JSON(http.StatusOK, updated)
}

// ListSpeakers handles GET /v1/admin/speakers.
func (h *AdminHandler) ListSpeakers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Speakers.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteSpeaker handles DELETE /v1/admin/speakers/:id.
func (h *AdminHandler) DeleteSpeaker(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Speakers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "speaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
