package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renthaven/property-rental-marketplace/internal/database"
	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// newTestDB opens an isolated in-memory store with the full schema
// applied but nothing seeded.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Apply(context.Background(), db))
	return db
}

func mustCreateUser(t *testing.T, db *sql.DB, uid, role string) *model.User {
	t.Helper()
	u := &model.User{
		UID:          uid,
		Name:         "Test " + uid,
		Email:        uid + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       model.UserActive,
	}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), u))
	return u
}

func mustCreateProperty(t *testing.T, db *sql.DB, id, ownerID string) *model.Property {
	t.Helper()
	p := &model.Property{
		ID:      id,
		OwnerID: ownerID,
		Title:   "Listing " + id,
		Price:   120,
	}
	require.NoError(t, NewPropertyRepo(db).Create(context.Background(), p))
	return p
}

func mustCreateBooking(t *testing.T, db *sql.DB, id, userID, propertyID string) *model.Booking {
	t.Helper()
	b := &model.Booking{
		ID:         id,
		UserID:     userID,
		PropertyID: propertyID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-05",
	}
	require.NoError(t, NewBookingRepo(db).Create(context.Background(), b))
	return b
}
