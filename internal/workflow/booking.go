package workflow

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

// Bookings drives the stay-request lifecycle. States move pending ->
// approved -> cancelled, or pending -> cancelled; cancellation is
// terminal and there is no path back.
type Bookings struct {
	DB         *sql.DB
	Bookings   *repository.BookingRepo
	Properties *repository.PropertyRepo
	Settings   *repository.SettingsRepo
	Notify     Notifier
}

// Create places a booking request against a verified listing. Guests
// cannot book their own listing, and the platform's active-booking
// limit applies per user.
func (w *Bookings) Create(ctx context.Context, b *model.Booking) error {
	p, err := w.Properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	if p.Status != model.PropertyVerified {
		return repository.ErrStateConflict
	}
	if p.OwnerID == b.UserID {
		return repository.ErrForbidden
	}

	settings, err := w.Settings.GetAll(ctx)
	if err != nil {
		return err
	}
	active, err := w.Bookings.CountActiveByUser(ctx, b.UserID)
	if err != nil {
		return err
	}
	if active >= settings.MaxBookingsPerUser {
		return ErrBookingLimit
	}

	if err := w.Bookings.Create(ctx, b); err != nil {
		return err
	}

	w.Notify.Notify(ctx, p.OwnerID, model.NoticeBookingRequested,
		"New booking request",
		fmt.Sprintf("A guest requested %s to %s at %q.", b.StartDate, b.EndDate, p.Title),
		b.ID)
	return nil
}

// Approve confirms a pending booking. Only the listing's owner may
// approve; a booking no longer pending yields a state conflict.
func (w *Bookings) Approve(ctx context.Context, id, ownerID string) error {
	b, err := w.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := w.Properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return repository.ErrForbidden
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approval tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := w.Bookings.ApproveTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrStateConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit approval tx: %w", err)
	}
	committed = true

	w.Notify.Notify(ctx, b.UserID, model.NoticeBookingStatus,
		"Booking approved",
		fmt.Sprintf("Your stay at %q from %s to %s is confirmed.", p.Title, b.StartDate, b.EndDate),
		id)
	return nil
}

// CancelByGuest cancels the guest's own booking.
func (w *Bookings) CancelByGuest(ctx context.Context, id, userID string) error {
	return w.cancel(ctx, id, func(b *model.Booking, p *model.Property) error {
		if b.UserID != userID {
			return repository.ErrForbidden
		}
		return nil
	})
}

// CancelByOwner cancels a booking on one of the owner's listings.
func (w *Bookings) CancelByOwner(ctx context.Context, id, ownerID string) error {
	return w.cancel(ctx, id, func(b *model.Booking, p *model.Property) error {
		if p.OwnerID != ownerID {
			return repository.ErrForbidden
		}
		return nil
	})
}

// CancelByAdmin cancels any booking with no ownership check.
func (w *Bookings) CancelByAdmin(ctx context.Context, id string) error {
	return w.cancel(ctx, id, func(*model.Booking, *model.Property) error { return nil })
}

func (w *Bookings) cancel(ctx context.Context, id string, authorize func(*model.Booking, *model.Property) error) error {
	b, err := w.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := w.Properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	if err := authorize(b, p); err != nil {
		return err
	}
	// Terminal state: report it without writing or notifying again.
	if b.Status == model.BookingCancelled {
		return ErrAlreadyCancelled
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := w.Bookings.CancelTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Raced with another canceller.
		return ErrAlreadyCancelled
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cancel tx: %w", err)
	}
	committed = true

	w.Notify.Notify(ctx, b.UserID, model.NoticeBookingStatus,
		"Booking cancelled",
		fmt.Sprintf("Your booking at %q from %s to %s was cancelled.", p.Title, b.StartDate, b.EndDate),
		id)
	return nil
}
