package workflow

import (
	"context"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

// Users drives account moderation. Status and role flips are single
// conditional updates, no transaction needed, but every entry point
// refuses to touch an admin account before any write is attempted.
type Users struct {
	Users  *repository.UserRepo
	Notify Notifier
}

// SetStatus toggles an account between active and suspended. A
// suspended account keeps all of its rows; suspension never deletes.
func (w *Users) SetStatus(ctx context.Context, uid, status string) error {
	if !model.ValidUserStatus(status) {
		return repository.ErrStateConflict
	}
	u, err := w.Users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if u.Role == model.RoleAdmin {
		return repository.ErrForbidden
	}

	rows, err := w.Users.UpdateStatus(ctx, uid, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}

	title, body := "Account reactivated", "Your account is active again."
	if status == model.UserSuspended {
		title, body = "Account suspended", "Your account has been suspended. Contact support for details."
	}
	w.Notify.Notify(ctx, uid, model.NoticeAccountStatus, title, body, uid)
	return nil
}

// SetRole flips an account between the user and owner roles. Granting
// or revoking admin this way is refused.
func (w *Users) SetRole(ctx context.Context, uid, role string) error {
	if role != model.RoleUser && role != model.RoleOwner {
		return repository.ErrForbidden
	}
	u, err := w.Users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if u.Role == model.RoleAdmin {
		return repository.ErrForbidden
	}

	rows, err := w.Users.UpdateRole(ctx, uid, role)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}

	w.Notify.Notify(ctx, uid, model.NoticeAccountStatus,
		"Account role updated", "Your account role is now "+role+".", uid)
	return nil
}

// Delete removes an account. Listings, bookings, role requests and
// notifications cascade; contact messages stay behind with a nulled
// author. Admin accounts cannot be deleted.
func (w *Users) Delete(ctx context.Context, uid string) error {
	u, err := w.Users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if u.Role == model.RoleAdmin {
		return repository.ErrForbidden
	}

	rows, err := w.Users.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
