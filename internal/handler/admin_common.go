package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/openconf/registration-backend/internal/model"
)

// SpeakerStore is the repository surface the speaker CRUD handlers use.
type SpeakerStore interface {
	Create(ctx context.Context, s *model.Speaker) error
	Update(ctx context.Context, s *model.Speaker) error
	GetByID(ctx context.Context, id uint64) (model.Speaker, error)
	List(ctx context.Context) ([]model.Speaker, error)
	Delete(ctx context.Context, id uint64) error
}

// TalkStore is the repository surface the talk CRUD handlers use.
type TalkStore interface {
	Create(ctx context.Context, t *model.Talk) error
	Update(ctx context.Context, t *model.Talk) error
	List(ctx context.Context) ([]model.Talk, error)
	Delete(ctx context.Context, id uint64) error
}

// RegistrationAdminStore is the repository surface the registration admin
// handlers use: listing and the one deletion path.
type RegistrationAdminStore interface {
	List(ctx context.Context) ([]model.Registration, error)
	Delete(ctx context.Context, id string) error
}

// AdminHandler groups the stores behind the dashboard API. All routes
// using it sit behind JWTAuth + RequireRole("ADMIN").
type AdminHandler struct {
	Speakers      SpeakerStore
	Talks         TalkStore
	Registrations RegistrationAdminStore
}

func NewAdminHandler(s SpeakerStore, t TalkStore, r RegistrationAdminStore) *AdminHandler {
	if s == nil || t == nil || r == nil {
		panic("nil store passed to NewAdminHandler")
	}
	return &AdminHandler{Speakers: s, Talks: t, Registrations: r}
}

// v validates admin DTO struct tags.
var v = validator.New()

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
