package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// ErrUserNotFound indicates no user row matched the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepo provides persistence for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `uid, name, email, passwordHash, role, status,
	COALESCE(mobile,''), COALESCE(avatarUrl,''), createdAt`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Status, &u.Mobile, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account row. Email is normalized to lower case.
// Role and status fall back to the schema defaults when empty. Returns
// ErrDuplicate when the email is already registered.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.Status == "" {
		u.Status = model.UserActive
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (uid, name, email, passwordHash, role, status, mobile, avatarUrl)
		 VALUES (?, ?, ?, ?, ?, ?, NULLIF(?,''), NULLIF(?,''))`,
		u.UID, u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.Mobile, u.AvatarURL)
	if err != nil {
		return constraintError(err)
	}
	return r.DB.QueryRowContext(ctx,
		`SELECT createdAt FROM users WHERE uid = ?`, u.UID).Scan(&u.CreatedAt)
}

// GetByID fetches a user by uid. Returns ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, uid string) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE uid = ?`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return u, err
}

// List returns users ordered by creation time, optionally filtered by
// role and/or status. Empty filter values mean "any".
func (r *UserRepo) List(ctx context.Context, role, status string) ([]model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []any{}
	if role != "" {
		q += ` AND role = ?`
		args = append(args, role)
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY createdAt DESC, uid`
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateStatus sets users.status and reports how many rows changed.
func (r *UserRepo) UpdateStatus(ctx context.Context, uid, status string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET status = ? WHERE uid = ?`, status, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateRole sets users.role and reports how many rows changed.
func (r *UserRepo) UpdateRole(ctx context.Context, uid, role string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE uid = ?`, role, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PromoteTx promotes a user to owner/active inside the caller's
// transaction. Used by the role request approval, which must change
// the request row and the user row atomically.
func (r *UserRepo) PromoteTx(ctx context.Context, tx *sql.Tx, uid string) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET role = ?, status = ? WHERE uid = ?`,
		model.RoleOwner, model.UserActive, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateProfile updates the user's own editable fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, uid, name, mobile, avatarURL string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name = ?, mobile = NULLIF(?,''), avatarUrl = NULLIF(?,'') WHERE uid = ?`,
		name, mobile, avatarURL, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the account row. Owned properties, bookings, role
// requests and notifications go with it via the schema's cascades;
// contact messages keep their row with userId set to NULL.
func (r *UserRepo) Delete(ctx context.Context, uid string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = ?`, uid)
	if err != nil {
		return 0, constraintError(err)
	}
	return res.RowsAffected()
}
