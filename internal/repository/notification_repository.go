package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// ErrNotificationNotFound indicates no notification matched the lookup.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepo provides persistence for user notices. The insert
// deliberately runs on the shared handle, never inside a workflow's
// transaction: the dispatcher calls it only after the primary
// transition committed, and its failure must stay isolated.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

const notificationColumns = `id, userId, type, title, message, status, COALESCE(relatedId,''), createdAt`

func scanNotification(row interface{ Scan(...any) error }) (*model.Notification, error) {
	var n model.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
		&n.Status, &n.RelatedID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Insert stores a notice in the schema-default 'unread' state.
func (r *NotificationRepo) Insert(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO notifications (userId, type, title, message, relatedId)
		 VALUES (?, ?, ?, ?, NULLIF(?,''))`,
		n.UserID, n.Type, n.Title, n.Message, n.RelatedID)
	if err != nil {
		return constraintError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = id
	return r.DB.QueryRowContext(ctx,
		`SELECT status, createdAt FROM notifications WHERE id = ?`, id).Scan(&n.Status, &n.CreatedAt)
}

// ListByUser returns the user's notices, newest first. With onlyUnread
// set, read notices are filtered out.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]model.Notification, error) {
	q := `SELECT ` + notificationColumns + ` FROM notifications WHERE userId = ?`
	args := []any{userID}
	if onlyUnread {
		q += ` AND status = ?`
		args = append(args, model.NotificationUnread)
	}
	q += ` ORDER BY createdAt DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	notices := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *n)
	}
	return notices, rows.Err()
}

// CountUnread returns the user's unread notice count (the badge).
func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE userId = ? AND status = ?`,
		userID, model.NotificationUnread).Scan(&n)
	return n, err
}

// MarkRead marks one notice read. The userId guard stops a user from
// touching someone else's notices.
func (r *NotificationRepo) MarkRead(ctx context.Context, id int64, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET status = ? WHERE id = ? AND userId = ?`,
		model.NotificationRead, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkAllRead marks every unread notice of the user read and returns
// how many were flipped.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET status = ? WHERE userId = ? AND status = ?`,
		model.NotificationRead, userID, model.NotificationUnread)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
