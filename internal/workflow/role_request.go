package workflow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

// RoleRequests drives the user -> owner promotion workflow. A user
// holds at most one request row for the lifetime of the account:
// re-submitting after a rejection reopens the same row instead of
// inserting a new one.
type RoleRequests struct {
	DB       *sql.DB
	Users    *repository.UserRepo
	Requests *repository.RoleRequestRepo
	Notify   Notifier
}

// Submit files (or re-files) a promotion request for userID.
// Only an active, plain-role user may apply; a pending or approved
// request blocks a second submission.
func (w *RoleRequests) Submit(ctx context.Context, userID string) (*model.RoleRequest, error) {
	u, err := w.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleUser || u.Status != model.UserActive {
		return nil, repository.ErrForbidden
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin role request tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	prev, err := w.Requests.GetByUserIDTx(ctx, tx, userID)
	switch {
	case err == nil:
		switch prev.Status {
		case model.RequestRejected:
			rows, err := w.Requests.ReopenTx(ctx, tx, prev.ID)
			if err != nil {
				return nil, err
			}
			if rows == 0 {
				// Raced with a concurrent resubmission.
				return nil, repository.ErrStateConflict
			}
		default:
			return nil, repository.ErrStateConflict
		}
	case errors.Is(err, repository.ErrRequestNotFound):
		if _, err := w.Requests.InsertTx(ctx, tx, userID); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit role request tx: %w", err)
	}
	committed = true

	req, err := w.Requests.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	w.Notify.Notify(ctx, userID, model.NoticeRoleRequestSubmitted,
		"Owner request received",
		"Your request to become an owner is awaiting review.",
		fmt.Sprintf("%d", req.ID))
	return req, nil
}

// Approve promotes the requesting user to the owner role. The request
// update and the user promotion share one transaction: both land or
// neither does. A request that is no longer pending yields a state
// conflict, which also guards against double-approval races.
func (w *RoleRequests) Approve(ctx context.Context, requestID int64) error {
	req, err := w.Requests.GetByID(ctx, requestID)
	if err != nil {
		return err
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

	rows, err := w.Requests.ApproveTx(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrStateConflict
	}

	rows, err = w.Users.PromoteTx(ctx, tx, req.UserID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit approval tx: %w", err)
	}
	committed = true

	w.Notify.Notify(ctx, req.UserID, model.NoticeRoleRequestStatus,
		"Owner request approved",
		"Congratulations, your account has been upgraded to owner.",
		fmt.Sprintf("%d", requestID))
	return nil
}

// Reject declines a pending request. Reviewer notes are mandatory so
// the applicant always learns why.
func (w *RoleRequests) Reject(ctx context.Context, requestID int64, notes string) error {
	if notes == "" {
		return ErrNotesRequired
	}
	req, err := w.Requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	rows, err := w.Requests.Reject(ctx, requestID, notes)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrStateConflict
	}

	w.Notify.Notify(ctx, req.UserID, model.NoticeRoleRequestStatus,
		"Owner request declined",
		"Your owner request was declined: "+notes,
		fmt.Sprintf("%d", requestID))
	return nil
}
