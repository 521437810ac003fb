package workflow

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

// Properties drives listing moderation. Every new listing enters the
// review queue as pending; only Approve/Reject move it out, and an
// owner edit of a rejected listing sends it back for re-review.
type Properties struct {
	DB         *sql.DB
	Properties *repository.PropertyRepo
	Notify     Notifier
}

// Create inserts a new listing for its owner. The status is left to
// the schema default, so a listing always starts pending regardless
// of what the caller put in the struct.
func (w *Properties) Create(ctx context.Context, p *model.Property) error {
	return w.Properties.Create(ctx, p)
}

// Approve marks a pending listing as verified and tells the owner.
func (w *Properties) Approve(ctx context.Context, id string) error {
	return w.decide(ctx, id, model.PropertyVerified,
		"Listing approved", "Your listing %q is now live.")
}

// Reject declines a pending listing.
func (w *Properties) Reject(ctx context.Context, id string) error {
	return w.decide(ctx, id, model.PropertyRejected,
		"Listing rejected", "Your listing %q was not approved. Edit it to resubmit for review.")
}

func (w *Properties) decide(ctx context.Context, id, newStatus, title, bodyFmt string) error {
	p, err := w.Properties.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin moderation tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := w.Properties.DecideTx(ctx, tx, id, newStatus)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Already decided by another moderator.
		return repository.ErrStateConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit moderation tx: %w", err)
	}
	committed = true

	w.Notify.Notify(ctx, p.OwnerID, model.NoticePropertyStatus,
		title, fmt.Sprintf(bodyFmt, p.Title), id)
	return nil
}

// OwnerUpdate applies an owner's edit to their own listing. Editing a
// rejected listing resets it to pending; verified and pending listings
// keep their status.
func (w *Properties) OwnerUpdate(ctx context.Context, ownerID string, p *model.Property) (*model.Property, error) {
	existing, err := w.Properties.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, repository.ErrForbidden
	}

	resetStatus := existing.Status == model.PropertyRejected
	rows, err := w.Properties.UpdateDetails(ctx, p, resetStatus)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, repository.ErrPropertyNotFound
	}
	return w.Properties.GetByID(ctx, p.ID)
}

// OwnerDelete removes a listing after an ownership check. Bookings on
// the listing go with it via the cascade.
func (w *Properties) OwnerDelete(ctx context.Context, ownerID, id string) error {
	existing, err := w.Properties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return repository.ErrForbidden
	}
	rows, err := w.Properties.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrPropertyNotFound
	}
	return nil
}
