// Package router wires HTTP routes for the public site API and the admin
// dashboard API.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openconf/registration-backend/internal/config"
	"github.com/openconf/registration-backend/internal/handler"
	"github.com/openconf/registration-backend/internal/middleware"
)

// New builds the Echo instance and registers every route. The registration
// endpoint accepts POST only; the error handler below turns router-level
// rejections (wrong method, unknown path) into the same {error} envelope
// the handlers use.
func New(cfg config.Config, reg *handler.RegisterHandler, pub *handler.PublicHandler, auth *handler.AuthHandler, admin *handler.AdminHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	origins := []string{"*"}
	if cfg.IsProd() && cfg.AllowedOrigin != "" {
		origins = []string{cfg.AllowedOrigin}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public site API
	e.POST("/api/register", reg.Register)
	e.GET("/api/speakers", pub.GetSpeakers)
	e.GET("/api/schedule", pub.GetSchedule)

	// Admin auth
	g := e.Group("/v1/auth")
	g.POST("/login", auth.Login)
	g.POST("/refresh", auth.Refresh)
	g.POST("/logout", auth.Logout)
	g.POST("/logout_all", auth.LogoutAll, middleware.JWTAuth(cfg.JWTSecret))

	// Dashboard API, admin only
	a := e.Group("/v1/admin")
	a.Use(middleware.JWTAuth(cfg.JWTSecret))
	a.Use(middleware.RequireRole("ADMIN"))

	a.POST("/speakers", admin.CreateSpeaker)
	a.GET("/speakers", admin.ListSpeakers)
	a.PUT("/speakers/:id", admin.UpdateSpeaker)
	a.DELETE("/speakers/:id", admin.DeleteSpeaker)

	a.POST("/talks", admin.CreateTalk)
	a.GET("/talks", admin.ListTalks)
	a.PUT("/talks/:id", admin.UpdateTalk)
	a.DELETE("/talks/:id", admin.DeleteTalk)

	a.GET("/registrations", admin.ListRegistrations)
	a.DELETE("/registrations/:id", admin.DeleteRegistration)

	return e
}

// errorHandler maps echo-level HTTP errors to the {error} envelope so a
// caller hitting /api/register with the wrong method sees the same shape as
// every other rejection. Internal detail stays out of the body.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "internal error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch status {
		case http.StatusMethodNotAllowed:
			msg = "method not allowed"
		case http.StatusNotFound:
			msg = "not found"
		default:
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
	}
	_ = c.JSON(status, echo.Map{"error": msg})
}
