package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/openconf/registration-backend/internal/model"
)

// RegistrationRepo is the only component that writes registrations. The
// pipeline inserts exactly once per successful request and never updates or
// deletes; deletion belongs to the admin surface.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

// Insert persists a validated registration and fills in the server-assigned
// ID and CreatedAt. A duplicate email surfaces as ErrDuplicateEmail via the
// unique constraint; any other failure is returned opaque for the handler
// to map to a generic response.
func (r *RegistrationRepo) Insert(ctx context.Context, reg *model.Registration) error {
	id := uuid.NewString()
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO registrations (id, name, email, phone, college, year, department, ticket_type)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at`,
		id, reg.Name, reg.Email,
		nullable(reg.Phone), nullable(reg.College), nullable(reg.Year), nullable(reg.Department),
		string(reg.TicketType),
	).Scan(&reg.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	reg.ID = id
	return nil
}

// List returns all registrations, newest first, for the admin dashboard.
func (r *RegistrationRepo) List(ctx context.Context) ([]model.Registration, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, email, phone, college, year, department, ticket_type, created_at
		 FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Registration{}
	for rows.Next() {
		var (
			reg                             model.Registration
			phone, college, year, dept      sql.NullString
			ticket                          string
		)
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &phone, &college, &year, &dept, &ticket, &reg.CreatedAt); err != nil {
			return nil, err
		}
		reg.Phone = phone.String
		reg.College = college.String
		reg.Year = year.String
		reg.Department = dept.String
		reg.TicketType = model.TicketType(ticket)
		items = append(items, reg)
	}
	return items, rows.Err()
}

// Delete removes one registration by id. Returns ErrNotFound when no row
// was affected.
func (r *RegistrationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM registrations WHERE id=$1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullable maps an empty optional field to SQL NULL so the column
// constraints treat "absent" and "empty" identically.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
