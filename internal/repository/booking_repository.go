package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// ErrBookingNotFound indicates no booking row matched the lookup.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides persistence for bookings. Cancellation is a
// terminal state; the conditional updates below are the only status
// writes and each carries its own starting-state guard.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = `id, userId, propertyId, startDate, endDate, status, bookingDate`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.PropertyID, &b.StartDate, &b.EndDate,
		&b.Status, &b.BookingDate)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking in the schema-default 'pending' state.
// Returns ErrForeignKey when the user or property does not exist.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings (id, userId, propertyId, startDate, endDate) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.PropertyID, b.StartDate, b.EndDate)
	if err != nil {
		return constraintError(err)
	}
	return r.DB.QueryRowContext(ctx,
		`SELECT status, bookingDate FROM bookings WHERE id = ?`, b.ID).Scan(&b.Status, &b.BookingDate)
}

// GetByID fetches a booking. Returns ErrBookingNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// GetByIDTx is GetByID inside the caller's transaction, so a guard
// check and the following conditional update read consistent state.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns a guest's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE userId = ? ORDER BY bookingDate DESC, id`,
		userID)
}

// ListForOwner returns bookings on any property of the given owner.
func (r *BookingRepo) ListForOwner(ctx context.Context, ownerID string) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT b.id, b.userId, b.propertyId, b.startDate, b.endDate, b.status, b.bookingDate
		 FROM bookings b
		 JOIN properties p ON p.id = b.propertyId
		 WHERE p.ownerId = ?
		 ORDER BY b.bookingDate DESC, b.id`,
		ownerID)
}

// ListAll returns every booking, optionally filtered by status.
func (r *BookingRepo) ListAll(ctx context.Context, status string) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY bookingDate DESC, id`
	return r.list(ctx, q, args...)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// CountActiveByUser counts a guest's non-cancelled bookings. Used to
// enforce the maxBookingsPerUser platform setting.
func (r *BookingRepo) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE userId = ? AND status != ?`,
		userID, model.BookingCancelled).Scan(&n)
	return n, err
}

// ApproveTx moves a booking pending -> approved inside the caller's
// transaction. Zero affected rows means the booking left 'pending'
// between the caller's read and this write.
func (r *BookingRepo) ApproveTx(ctx context.Context, tx *sql.Tx, id string) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`,
		model.BookingApproved, id, model.BookingPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CancelTx moves a booking to 'cancelled' inside the caller's
// transaction, guarded against re-cancelling.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id string) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status != ?`,
		model.BookingCancelled, id, model.BookingCancelled)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
