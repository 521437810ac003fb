// Package repository defines the data access layer and the error
// taxonomy shared across it. Sentinel values let handlers and
// workflows distinguish failure classes with errors.Is: a guard clause
// that matched zero rows (ErrStateConflict) is a different situation
// from a row that does not exist at all, and a unique-constraint
// violation (ErrDuplicate) calls for a different message than a
// missing or still-referenced row (ErrForeignKey).
package repository

import (
	"errors"
	"strings"
	"time"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrStateConflict is returned when a guarded transition found the
// entity outside its expected starting state (already approved,
// already decided, and so on). Handlers translate this into 409.
var ErrStateConflict = errors.New("state conflict")

// ErrDuplicate is returned when an insert or update trips a unique
// constraint, e.g. registering an email twice.
var ErrDuplicate = errors.New("duplicate value")

// ErrForeignKey is returned when a write references a row that does
// not exist, or is blocked by rows that still depend on it.
var ErrForeignKey = errors.New("foreign key violation")

// constraintError translates driver constraint failures into the
// sentinels above; anything unrecognized passes through untouched.
func constraintError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrForeignKey
	}
	return err
}

// dbTimeFormat is how the store renders datetime('now'); all
// timestamps are written and compared in this format, UTC.
const dbTimeFormat = "2006-01-02 15:04:05"

func nowUTC() string {
	return time.Now().UTC().Format(dbTimeFormat)
}
