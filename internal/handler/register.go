package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openconf/registration-backend/internal/metrics"
	"github.com/openconf/registration-backend/internal/model"
	"github.com/openconf/registration-backend/internal/ratelimit"
	"github.com/openconf/registration-backend/internal/repository"
	"github.com/openconf/registration-backend/internal/validate"
)

// RegistrationStore is the slice of the repository the endpoint needs: one
// guarded insert with idempotency on email.
type RegistrationStore interface {
	Insert(ctx context.Context, reg *model.Registration) error
}

// Publisher emits the registration-created event after a successful insert.
// Failures are logged, never surfaced to the submitter.
type Publisher func(ctx context.Context, reg model.Registration)

// RegisterHandler orchestrates one registration attempt: rate check, field
// validation, then a single guarded insert. Each stage short-circuits with
// its fixed response; the store is only touched after both local checks pass.
type RegisterHandler struct {
	Store   RegistrationStore
	Limiter ratelimit.Limiter
	Publish Publisher        // optional
	Metrics *metrics.Metrics // optional
}

func NewRegisterHandler(store RegistrationStore, limiter ratelimit.Limiter) *RegisterHandler {
	if store == nil || limiter == nil {
		panic("nil dependency passed to NewRegisterHandler")
	}
	return &RegisterHandler{Store: store, Limiter: limiter}
}

// Register handles POST /api/register.
func (h *RegisterHandler) Register(c echo.Context) error {
	key := clientKey(c)

	res, err := h.Limiter.Check(c.Request().Context(), key)
	if err != nil {
		// A broken shared counter must not take registration down; admit
		// and leave the diagnostic server side.
		log.Printf("register: rate limit check failed for key=%s: %v", key, err)
	} else {
		now := time.Now()
		c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed {
			c.Response().Header().Set("Retry-After", strconv.Itoa(res.RetryAfter(now)))
			h.recordRejected("rate_limit")
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
		}
	}

	var raw validate.RawSubmission
	if err := c.Bind(&raw); err != nil {
		h.recordRejected("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	vres := validate.Registration(raw)
	if !vres.OK {
		h.recordRejected("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":       "validation failed",
			"fieldErrors": vres.Errors,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg := vres.Value
	if err := h.Store.Insert(ctx, &reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Do not say which field matched; the submitter already knows
			// their own email and learns nothing about anyone else's.
			h.recordRejected("duplicate")
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered"})
		}
		log.Printf("register: insert failed: %v", err)
		h.recordRejected("store_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed, please try again later"})
	}

	if h.Metrics != nil {
		h.Metrics.RegistrationsCreated.Inc()
	}
	if h.Publish != nil {
		// The publish must not delay the response, and the request context
		// is canceled the moment the response is written, so the goroutine
		// gets its own deadline.
		go func(r model.Registration) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			h.Publish(ctx, r)
		}(reg)
	}

	return c.JSON(http.StatusCreated, echo.Map{"registrationId": reg.ID})
}

func (h *RegisterHandler) recordRejected(reason string) {
	if h.Metrics != nil {
		h.Metrics.RecordRejected(reason)
	}
}

// clientKey buckets rate-limit counts by the forwarded client address.
// echo's RealIP walks X-Forwarded-For, then X-Real-IP, then the socket peer;
// an empty result maps to a shared fallback key.
func clientKey(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}
