// Seeds an admin dashboard account. There is no signup endpoint; this is
// the only way accounts come into existence.
//
// Usage:
//
//	seed -email admin@conf.example -password 's3cret'
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/openconf/registration-backend/internal/config"
	"github.com/openconf/registration-backend/internal/database"
	"github.com/openconf/registration-backend/internal/repository"
)

func main() {
	var (
		email    = flag.String("email", "", "admin email (required)")
		password = flag.String("password", "", "admin password (required)")
		role     = flag.String("role", "ADMIN", "role claim issued on login")
	)
	flag.Parse()
	if *email == "" || *password == "" {
		log.Fatal("seed: -email and -password are required")
	}

	cfg := config.Load()
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("seed: database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	id, err := users.Create(ctx, *email, *password, *role, cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			log.Fatalf("seed: %s already has an account", *email)
		}
		log.Fatalf("seed: create admin: %v", err)
	}
	log.Printf("seed: created admin %s (id=%d, role=%s)", *email, id, *role)
}
