package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// ErrMessageNotFound indicates no contact message matched the lookup.
var ErrMessageNotFound = errors.New("contact message not found")

// ContactRepo provides persistence for support inquiries. Messages may
// be submitted by guests (nil userId) or signed-in users; the schema
// keeps the row when the account is later deleted.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

const messageColumns = `id, userId, name, email, subject, message, status,
	reply_text, reply_timestamp, has_admin_reply, createdAt`

func scanMessage(row interface{ Scan(...any) error }) (*model.ContactMessage, error) {
	var (
		m         model.ContactMessage
		userID    sql.NullString
		replyText sql.NullString
		replyTS   sql.NullString
		hasReply  int
	)
	err := row.Scan(&m.ID, &userID, &m.Name, &m.Email, &m.Subject, &m.Message,
		&m.Status, &replyText, &replyTS, &hasReply, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		m.UserID = &userID.String
	}
	if replyText.Valid {
		m.ReplyText = &replyText.String
	}
	if replyTS.Valid {
		m.ReplyTimestamp = &replyTS.String
	}
	m.HasAdminReply = hasReply != 0
	return &m, nil
}

// Insert stores a new inquiry in the schema-default 'unseen' state.
func (r *ContactRepo) Insert(ctx context.Context, m *model.ContactMessage) error {
	var userID any
	if m.UserID != nil {
		userID = *m.UserID
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO contactMessages (userId, name, email, subject, message) VALUES (?, ?, ?, ?, ?)`,
		userID, m.Name, m.Email, m.Subject, m.Message)
	if err != nil {
		return constraintError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return r.DB.QueryRowContext(ctx,
		`SELECT status, createdAt FROM contactMessages WHERE id = ?`, id).Scan(&m.Status, &m.CreatedAt)
}

// GetByID fetches a message by id.
func (r *ContactRepo) GetByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	m, err := scanMessage(r.DB.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM contactMessages WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	return m, err
}

// List returns messages for the admin inbox, optionally filtered by
// status, newest first.
func (r *ContactRepo) List(ctx context.Context, status string) ([]model.ContactMessage, error) {
	q := `SELECT ` + messageColumns + ` FROM contactMessages`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY createdAt DESC, id DESC`
	return r.list(ctx, q, args...)
}

// ListByUser returns the user's own support thread.
func (r *ContactRepo) ListByUser(ctx context.Context, userID string) ([]model.ContactMessage, error) {
	return r.list(ctx,
		`SELECT `+messageColumns+` FROM contactMessages WHERE userId = ? ORDER BY createdAt DESC, id DESC`,
		userID)
}

func (r *ContactRepo) list(ctx context.Context, q string, args ...any) ([]model.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	msgs := make([]model.ContactMessage, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

// MarkSeen flips an unseen message to seen. Zero rows means the
// message is missing or already seen; callers disambiguate.
func (r *ContactRepo) MarkSeen(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE contactMessages SET status = ? WHERE id = ? AND status = ?`,
		model.MessageSeen, id, model.MessageUnseen)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Reply stores the admin's reply and marks the message seen.
func (r *ContactRepo) Reply(ctx context.Context, id int64, text string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE contactMessages
		 SET reply_text = ?, reply_timestamp = ?, has_admin_reply = 1, status = ?
		 WHERE id = ?`,
		text, nowUTC(), model.MessageSeen, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
