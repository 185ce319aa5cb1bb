package model

import "time"

// TicketType enumerates the ticket categories sold for the conference.
// Nothing outside this set is ever persisted.
type TicketType string

const (
	TicketStandard TicketType = "standard"
	TicketVIP      TicketType = "vip"
	TicketStudent  TicketType = "student"
)

// IsValid reports whether the ticket type is one of the supported values.
func (t TicketType) IsValid() bool {
	switch t {
	case TicketStandard, TicketVIP, TicketStudent:
		return true
	}
	return false
}

// Years lists the accepted values for the optional year-of-study field.
var Years = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Faculty", "Other"}

// IsValidYear reports whether y is one of the published year values.
func IsValidYear(y string) bool {
	for _, v := range Years {
		if v == y {
			return true
		}
	}
	return false
}

// Registration mirrors the 'registrations' table. Email is unique and acts
// as the natural key for duplicate detection; ID and CreatedAt are assigned
// by the server at insert time and never change.
type Registration struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	College    string     `json:"college,omitempty"`
	Year       string     `json:"year,omitempty"`
	Department string     `json:"department,omitempty"`
	TicketType TicketType `json:"ticket_type"`
	CreatedAt  time.Time  `json:"created_at"`
}
