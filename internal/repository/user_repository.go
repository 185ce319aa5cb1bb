package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/openconf/registration-backend/internal/model"
	"github.com/openconf/registration-backend/internal/utils"
)

// UserRepo persists admin dashboard accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts an admin user and returns its ID. Used by cmd/seed, not
// exposed over HTTP.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var id uint64
	err = r.DB.QueryRowContext(ctx,
		"INSERT INTO admin_users (email, password_hash, role) VALUES ($1,$2,$3) RETURNING id",
		email, hash, role).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return id, nil
}

// GetByEmail fetches an admin by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM admin_users WHERE email=$1 LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches an admin by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.AdminUser, error) {
	var u model.AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM admin_users WHERE id=$1 LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
