package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openconf/registration-backend/internal/config"
	"github.com/openconf/registration-backend/internal/database"
	"github.com/openconf/registration-backend/internal/handler"
	"github.com/openconf/registration-backend/internal/mailer"
	"github.com/openconf/registration-backend/internal/metrics"
	"github.com/openconf/registration-backend/internal/model"
	"github.com/openconf/registration-backend/internal/queue"
	"github.com/openconf/registration-backend/internal/ratelimit"
	"github.com/openconf/registration-backend/internal/repository"
	"github.com/openconf/registration-backend/internal/router"
	queue_publisher "github.com/openconf/registration-backend/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	regRepo := repository.NewRegistrationRepo(db)
	speakerRepo := repository.NewSpeakerRepo(db)
	talkRepo := repository.NewTalkRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Counter picks Redis when REDIS_ADDR points at a live server, otherwise
	// a process-local fixed window.
	rlCfg := config.LoadRateLimitConfig()
	var limiter ratelimit.Limiter
	if rdb := config.NewRedisClient(); rdb != nil {
		limiter = ratelimit.NewRedis(rdb, rlCfg.Prefix, rlCfg.Max, rlCfg.Window)
		log.Printf("rate limit: redis window max=%d window=%s", rlCfg.Max, rlCfg.Window)
	} else {
		limiter = ratelimit.NewMemory(rlCfg.Max, rlCfg.Window)
		log.Printf("rate limit: in-memory window max=%d window=%s", rlCfg.Max, rlCfg.Window)
	}

	m := metrics.New()

	reg := handler.NewRegisterHandler(regRepo, limiter)
	reg.Metrics = m
	reg.Publish = func(ctx context.Context, r model.Registration) {
		_ = queue_publisher.PublishRegistrationCreated(ctx, queue.RegistrationCreatedEvent{
			RegistrationID: r.ID,
			Name:           r.Name,
			Email:          r.Email,
			TicketType:     string(r.TicketType),
			CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		})
	}

	pub := handler.NewPublicHandler(speakerRepo, talkRepo)
	auth := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	admin := handler.NewAdminHandler(speakerRepo, talkRepo, regRepo)

	e := router.New(cfg, reg, pub, auth, admin)

	go queue.StartConsumer(mailer.FromEnv())

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}
