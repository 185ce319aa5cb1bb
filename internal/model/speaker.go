package model

import "time"

// Speaker mirrors the 'speakers' table.
type Speaker struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Talk mirrors the 'talks' table. Talks ordered by StartsAt form the
// public schedule.
type Talk struct {
	ID        uint64    `json:"id"`
	SpeakerID uint64    `json:"speaker_id"`
	Title     string    `json:"title"`
	Abstract  string    `json:"abstract,omitempty"`
	Room      string    `json:"room,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
