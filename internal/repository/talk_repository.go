package repository

import (
	"context"
	"database/sql"

	"github.com/openconf/registration-backend/internal/model"
)

type TalkRepo struct{ DB *sql.DB }

func NewTalkRepo(db *sql.DB) *TalkRepo { return &TalkRepo{DB: db} }

// Create inserts a talk for an existing speaker. A missing speaker surfaces
// as ErrNotFound via the foreign key.
func (r *TalkRepo) Create(ctx context.Context, t *model.Talk) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO talks (speaker_id, title, abstract, room, starts_at, ends_at)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`,
		t.SpeakerID, t.Title, nullable(t.Abstract), nullable(t.Room), t.StartsAt, t.EndsAt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrNotFound
	}
	return err
}

// Update rewrites the mutable fields of a talk.
func (r *TalkRepo) Update(ctx context.Context, t *model.Talk) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE talks SET speaker_id=$1, title=$2, abstract=$3, room=$4, starts_at=$5, ends_at=$6, updated_at=now()
		 WHERE id=$7`,
		t.SpeakerID, t.Title, nullable(t.Abstract), nullable(t.Room), t.StartsAt, t.EndsAt, t.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
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

// List returns all talks ordered by start time; this ordering is the
// public schedule.
func (r *TalkRepo) List(ctx context.Context) ([]model.Talk, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, speaker_id, title, abstract, room, starts_at, ends_at, created_at, updated_at
		 FROM talks ORDER BY starts_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Talk{}
	for rows.Next() {
		var (
			t              model.Talk
			abstract, room sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.SpeakerID, &t.Title, &abstract, &room, &t.StartsAt, &t.EndsAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Abstract = abstract.String
		t.Room = room.String
		items = append(items, t)
	}
	return items, rows.Err()
}

// Delete removes a talk.
func (r *TalkRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM talks WHERE id=$1", id)
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
