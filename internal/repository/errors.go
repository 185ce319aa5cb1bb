// Package repository talks to the durable store. Sentinel errors defined
// here let handlers map storage outcomes to fixed HTTP responses without
// ever leaking driver error text to a caller.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when an insert hits the unique constraint
// on a registration email. The constraint is the sole arbiter of duplicates;
// no repository ever pre-checks existence, which would race with concurrent
// inserts of the same email.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrEmailExists is returned when creating an admin user with a taken email.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation (class 23503), e.g. a talk pointing at a missing speaker.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
