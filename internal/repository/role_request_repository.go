package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// ErrRequestNotFound indicates no role request row matched the lookup.
var ErrRequestNotFound = errors.New("role request not found")

// RoleRequestRepo provides persistence for the one-row-per-user role
// request slot. A user re-requesting after a rejection reuses the
// existing row via ReopenTx instead of inserting: the userId column is
// UNIQUE and the store's replace primitive would destroy the row id.
type RoleRequestRepo struct{ DB *sql.DB }

func NewRoleRequestRepo(db *sql.DB) *RoleRequestRepo { return &RoleRequestRepo{DB: db} }

const requestColumns = `id, userId, requestedRole, status, requestTimestamp, actionTimestamp, adminNotes`

func scanRequest(row interface{ Scan(...any) error }) (*model.RoleRequest, error) {
	var (
		rr     model.RoleRequest
		action sql.NullString
		notes  sql.NullString
	)
	err := row.Scan(&rr.ID, &rr.UserID, &rr.RequestedRole, &rr.Status,
		&rr.RequestTimestamp, &action, &notes)
	if err != nil {
		return nil, err
	}
	if action.Valid {
		rr.ActionTimestamp = &action.String
	}
	if notes.Valid {
		rr.AdminNotes = &notes.String
	}
	return &rr, nil
}

// GetByID fetches a request by id.
func (r *RoleRequestRepo) GetByID(ctx context.Context, id int64) (*model.RoleRequest, error) {
	rr, err := scanRequest(r.DB.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM roleRequests WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	return rr, err
}

// GetByUserID fetches the user's single request slot, if any.
func (r *RoleRequestRepo) GetByUserID(ctx context.Context, userID string) (*model.RoleRequest, error) {
	rr, err := scanRequest(r.DB.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM roleRequests WHERE userId = ?`, userID))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	return rr, err
}

// GetByUserIDTx is GetByUserID inside the caller's transaction.
func (r *RoleRequestRepo) GetByUserIDTx(ctx context.Context, tx *sql.Tx, userID string) (*model.RoleRequest, error) {
	rr, err := scanRequest(tx.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM roleRequests WHERE userId = ?`, userID))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	return rr, err
}

// List returns requests, optionally filtered by status, oldest first
// so the moderation queue is worked in submission order.
func (r *RoleRequestRepo) List(ctx context.Context, status string) ([]model.RoleRequest, error) {
	q := `SELECT ` + requestColumns + ` FROM roleRequests`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY requestTimestamp, id`
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	requests := make([]model.RoleRequest, 0)
	for rows.Next() {
		rr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *rr)
	}
	return requests, rows.Err()
}

// InsertTx creates the user's request slot inside the caller's
// transaction and returns the new row id.
func (r *RoleRequestRepo) InsertTx(ctx context.Context, tx *sql.Tx, userID string) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO roleRequests (userId, requestedRole, status, requestTimestamp)
		 VALUES (?, ?, ?, ?)`,
		userID, model.RoleOwner, model.RequestPending, nowUTC())
	if err != nil {
		return 0, constraintError(err)
	}
	return res.LastInsertId()
}

// ReopenTx resets a rejected request back to 'pending' in place,
// clearing the action fields. The row id is preserved: the user keeps
// their one unique slot.
func (r *RoleRequestRepo) ReopenTx(ctx context.Context, tx *sql.Tx, id int64) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE roleRequests
		 SET status = ?, requestTimestamp = ?, actionTimestamp = NULL, adminNotes = NULL
		 WHERE id = ? AND status = ?`,
		model.RequestPending, nowUTC(), id, model.RequestRejected)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ApproveTx marks a request approved inside the caller's transaction.
// The WHERE status = 'pending' guard defends against double-approval
// races: the second admin's update affects zero rows.
func (r *RoleRequestRepo) ApproveTx(ctx context.Context, tx *sql.Tx, id int64) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE roleRequests SET status = ?, actionTimestamp = ? WHERE id = ? AND status = ?`,
		model.RequestApproved, nowUTC(), id, model.RequestPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Reject marks a request rejected with the reviewer's notes. A single
// conditional update; requests outside 'pending' affect zero rows.
func (r *RoleRequestRepo) Reject(ctx context.Context, id int64, notes string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE roleRequests SET status = ?, actionTimestamp = ?, adminNotes = ? WHERE id = ? AND status = ?`,
		model.RequestRejected, nowUTC(), notes, id, model.RequestPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
