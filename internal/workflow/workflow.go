// Package workflow implements the transactional state machines behind
// moderation and booking actions. Every transition runs as begin ->
// guarded conditional update(s) -> commit; a guard that matches zero
// rows rolls back and reports a conflict instead of silently
// succeeding. Notifications are dispatched strictly after commit and
// their failures never reach the caller.
package workflow

import (
	"context"
	"errors"
)

// Notifier delivers a user-facing notice. Implementations are
// best-effort: there is no error return because a delivery failure
// must never influence the outcome of the transition that triggered
// it.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, body, relatedID string)
}

var (
	// ErrAlreadyCancelled reports a cancel call on a booking that is
	// already in its terminal state. Distinct from a conflict so the
	// caller can render it as an idempotent-looking outcome.
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrNotesRequired reports a rejection attempt without reviewer
	// notes.
	ErrNotesRequired = errors.New("admin notes required")

	// ErrBookingLimit reports that the guest already holds the
	// maximum number of active bookings the platform allows.
	ErrBookingLimit = errors.New("active booking limit reached")
)
