package repository

import (
	"context"
	"database/sql"

	"github.com/openconf/registration-backend/internal/model"
)

type SpeakerRepo struct{ DB *sql.DB }

func NewSpeakerRepo(db *sql.DB) *SpeakerRepo { return &SpeakerRepo{DB: db} }

// Create inserts a speaker and fills in the generated ID and timestamps.
func (r *SpeakerRepo) Create(ctx context.Context, s *model.Speaker) error {
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO speakers (name, title, bio, photo_url)
		 VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at`,
		s.Name, s.Title, nullable(s.Bio), nullable(s.PhotoURL),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update rewrites the mutable fields of a speaker.
func (r *SpeakerRepo) Update(ctx context.Context, s *model.Speaker) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE speakers SET name=$1, title=$2, bio=$3, photo_url=$4, updated_at=now() WHERE id=$5`,
		s.Name, s.Title, nullable(s.Bio), nullable(s.PhotoURL), s.ID)
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

// GetByID fetches one speaker.
func (r *SpeakerRepo) GetByID(ctx context.Context, id uint64) (model.Speaker, error) {
	var (
		s             model.Speaker
		bio, photoURL sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, title, bio, photo_url, created_at, updated_at FROM speakers WHERE id=$1`,
		id).Scan(&s.ID, &s.Name, &s.Title, &bio, &photoURL, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	s.Bio = bio.String
	s.PhotoURL = photoURL.String
	return s, err
}

// List returns all speakers ordered by name.
func (r *SpeakerRepo) List(ctx context.Context) ([]model.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, title, bio, photo_url, created_at, updated_at FROM speakers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Speaker{}
	for rows.Next() {
		var (
			s             model.Speaker
			bio, photoURL sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Title, &bio, &photoURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Bio = bio.String
		s.PhotoURL = photoURL.String
		items = append(items, s)
	}
	return items, rows.Err()
}

// Delete removes a speaker. Talks referencing it are removed by the
// ON DELETE CASCADE on talks.speaker_id.
func (r *SpeakerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM speakers WHERE id=$1", id)
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
