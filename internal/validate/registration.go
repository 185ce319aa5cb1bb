// Package validate checks raw registration submissions against field-level
// rules. It is pure: no I/O, no clock, no panics. Every field is checked
// independently so a single response can report all failing fields at once.
package validate

import (
	"regexp"
	"strings"

	"github.com/openconf/registration-backend/internal/model"
)

// Field message vocabulary. These strings are part of the API contract and
// surface next to the matching form input.
const (
	MsgNameRequired  = "Name is required"
	MsgNameTooShort  = "Name must be at least 2 characters"
	MsgNameTooLong   = "Name must be 100 characters or less"
	MsgNameInvalid   = "Name contains invalid characters"
	MsgEmailRequired = "Email is required"
	MsgEmailTooLong  = "Email must be 254 characters or less"
	MsgEmailInvalid  = "Enter a valid email address"
	MsgPhoneInvalid  = "Enter a valid phone number"
	MsgCollegeLong   = "College must be 200 characters or less"
	MsgDeptLong      = "Department must be 100 characters or less"
	MsgYearInvalid   = "Select a valid year"
	MsgTicketMissing = "Ticket type is required"
	MsgTicketInvalid = "Ticket type must be standard, vip or student"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z .'"-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9+()\- ]+$`)
)

// RawSubmission is the untrusted key-value record as received on the wire.
type RawSubmission struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	College    string `json:"college"`
	Year       string `json:"year"`
	Department string `json:"department"`
	TicketType string `json:"ticketType"`
}

// Result is the outcome of validating a submission. When OK is true, Value
// holds the normalized record (trimmed fields, lowercased email) and Errors
// is nil; otherwise Errors maps each failing field to its message.
type Result struct {
	OK     bool
	Value  model.Registration
	Errors map[string]string
}

// Registration validates one raw submission. All rules are field-independent
// and run even when required fields are missing, so the caller always sees
// the complete error set in one pass.
func Registration(raw RawSubmission) Result {
	errs := make(map[string]string)

	name := strings.TrimSpace(raw.Name)
	switch {
	case name == "":
		errs["name"] = MsgNameRequired
	case len(name) < 2:
		errs["name"] = MsgNameTooShort
	case len(name) > 100:
		errs["name"] = MsgNameTooLong
	case !nameRe.MatchString(name):
		errs["name"] = MsgNameInvalid
	}

	email := strings.ToLower(strings.TrimSpace(raw.Email))
	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case len(email) > 254:
		errs["email"] = MsgEmailTooLong
	case !emailRe.MatchString(email):
		errs["email"] = MsgEmailInvalid
	}

	phone := strings.TrimSpace(raw.Phone)
	if phone != "" {
		if len(phone) > 20 || !phoneRe.MatchString(phone) {
			errs["phone"] = MsgPhoneInvalid
		}
	}

	college := strings.TrimSpace(raw.College)
	if len(college) > 200 {
		errs["college"] = MsgCollegeLong
	}

	department := strings.TrimSpace(raw.Department)
	if len(department) > 100 {
		errs["department"] = MsgDeptLong
	}

	year := strings.TrimSpace(raw.Year)
	if year != "" && !model.IsValidYear(year) {
		errs["year"] = MsgYearInvalid
	}

	ticket := model.TicketType(strings.TrimSpace(raw.TicketType))
	switch {
	case ticket == "":
		errs["ticketType"] = MsgTicketMissing
	case !ticket.IsValid():
		errs["ticketType"] = MsgTicketInvalid
	}

	if len(errs) > 0 {
		return Result{OK: false, Errors: errs}
	}

	return Result{
		OK: true,
		Value: model.Registration{
			Name:       name,
			Email:      email,
			Phone:      phone,
			College:    college,
			Year:       year,
			Department: department,
			TicketType: ticket,
		},
	}
}
