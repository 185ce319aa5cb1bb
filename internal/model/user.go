package model

import "time"

// AdminUser mirrors the 'admin_users' table. There is no self-serve signup;
// rows are seeded out of band and only used to guard the dashboard API.
type AdminUser struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
