package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// ErrPropertyNotFound indicates no property row matched the lookup.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyRepo provides persistence for listings. Status moves only
// through the moderation workflow; this layer offers the guarded
// conditional updates and leaves the transition policy to the caller.
type PropertyRepo struct{ DB *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{DB: db} }

const propertyColumns = `id, ownerId, title, COALESCE(description,''), price,
	COALESCE(location,''), COALESCE(imageUrl,''), status, createdAt`

func scanProperty(row interface{ Scan(...any) error }) (*model.Property, error) {
	var p model.Property
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Price,
		&p.Location, &p.ImageURL, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a listing. Status is left to the schema default
// ('pending'): a newly created listing is never live until moderated.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO properties (id, ownerId, title, description, price, location, imageUrl)
		 VALUES (?, ?, ?, NULLIF(?,''), ?, NULLIF(?,''), NULLIF(?,''))`,
		p.ID, p.OwnerID, p.Title, p.Description, p.Price, p.Location, p.ImageURL)
	if err != nil {
		return constraintError(err)
	}
	return r.DB.QueryRowContext(ctx,
		`SELECT status, createdAt FROM properties WHERE id = ?`, p.ID).Scan(&p.Status, &p.CreatedAt)
}

// GetByID fetches a listing. Returns ErrPropertyNotFound when absent.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	p, err := scanProperty(r.DB.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	return p, err
}

// ListVerified returns live listings for public browsing, optionally
// filtered by location substring and maximum price. This is simple
// stateless query construction, not a search engine.
func (r *PropertyRepo) ListVerified(ctx context.Context, location string, maxPrice float64) ([]model.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE status = ?`
	args := []any{model.PropertyVerified}
	if location != "" {
		q += ` AND location LIKE ?`
		args = append(args, "%"+location+"%")
	}
	if maxPrice > 0 {
		q += ` AND price <= ?`
		args = append(args, maxPrice)
	}
	q += ` ORDER BY createdAt DESC, id`
	return r.list(ctx, q, args...)
}

// ListByOwner returns every listing of one owner, newest first.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Property, error) {
	return r.list(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE ownerId = ? ORDER BY createdAt DESC, id`,
		ownerID)
}

// ListByStatus returns the moderation queue for the given status.
func (r *PropertyRepo) ListByStatus(ctx context.Context, status string) ([]model.Property, error) {
	return r.list(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE status = ? ORDER BY createdAt, id`,
		status)
}

func (r *PropertyRepo) list(ctx context.Context, q string, args ...any) ([]model.Property, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	props := make([]model.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		props = append(props, *p)
	}
	return props, rows.Err()
}

// DecideTx applies a moderation decision inside the caller's
// transaction. The WHERE status = 'pending' guard makes the decision
// race-safe: an already-decided listing affects zero rows and the
// caller reports the conflict instead of re-moderating.
func (r *PropertyRepo) DecideTx(ctx context.Context, tx *sql.Tx, id, newStatus string) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE properties SET status = ? WHERE id = ? AND status = ?`,
		newStatus, id, model.PropertyPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateDetails rewrites the owner-editable fields. When resetStatus
// is true the listing is also moved back to 'pending' (edit of a
// rejected listing requires re-review); otherwise status is untouched.
func (r *PropertyRepo) UpdateDetails(ctx context.Context, p *model.Property, resetStatus bool) (int64, error) {
	q := `UPDATE properties SET title = ?, description = NULLIF(?,''), price = ?,
		location = NULLIF(?,''), imageUrl = NULLIF(?,'')`
	args := []any{p.Title, p.Description, p.Price, p.Location, p.ImageURL}
	if resetStatus {
		q += `, status = ?`
		args = append(args, model.PropertyPending)
	}
	q += ` WHERE id = ?`
	args = append(args, p.ID)
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a listing and, via cascade, its bookings.
func (r *PropertyRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return 0, constraintError(err)
	}
	return res.RowsAffected()
}
