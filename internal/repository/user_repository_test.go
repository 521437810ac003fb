package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

func TestCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	mustCreateUser(t, db, "u1", model.RoleUser)
	err := repo.Create(ctx, &model.User{
		UID: "u2", Name: "Other", Email: "U1@Example.com", PasswordHash: "x",
	})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

// Deleting a user must cascade to properties, bookings, role requests
// and notifications, and null out contactMessages.userId, and never leave
// an orphaned foreign key.
func TestDeleteCascadesAndPreservesContactHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := mustCreateUser(t, db, "owner1", model.RoleOwner)
	prop := mustCreateProperty(t, db, "prop1", owner.UID)
	mustCreateBooking(t, db, "book1", owner.UID, prop.ID)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = NewRoleRequestRepo(db).InsertTx(ctx, tx, owner.UID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.NoError(t, NewNotificationRepo(db).Insert(ctx, &model.Notification{
		UserID: owner.UID, Type: "test", Title: "t", Message: "m",
	}))

	msg := &model.ContactMessage{
		UserID: &owner.UID, Name: owner.Name, Email: owner.Email,
		Subject: "help", Message: "please",
	}
	require.NoError(t, NewContactRepo(db).Insert(ctx, msg))

	rows, err := NewUserRepo(db).Delete(ctx, owner.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	for _, q := range []string{
		`SELECT COUNT(*) FROM properties`,
		`SELECT COUNT(*) FROM bookings`,
		`SELECT COUNT(*) FROM roleRequests`,
		`SELECT COUNT(*) FROM notifications`,
	} {
		var n int
		require.NoError(t, db.QueryRow(q).Scan(&n))
		assert.Zero(t, n, q)
	}

	// The support thread survives with its author detached.
	got, err := NewContactRepo(db).GetByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
}

func TestBookingCreateRejectsMissingReferences(t *testing.T) {
	db := newTestDB(t)
	err := NewBookingRepo(db).Create(context.Background(), &model.Booking{
		ID: "b1", UserID: "ghost", PropertyID: "nowhere",
		StartDate: "2026-09-01", EndDate: "2026-09-02",
	})
	require.ErrorIs(t, err, ErrForeignKey)
}

func TestRoleRequestSlotIsUniquePerUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := mustCreateUser(t, db, "u1", model.RoleUser)

	repo := NewRoleRequestRepo(db)
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = repo.InsertTx(ctx, tx, u.UID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = repo.InsertTx(ctx, tx, u.UID)
	require.ErrorIs(t, err, ErrDuplicate)
	_ = tx.Rollback()
}
