package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

func TestSuspendAndReactivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "u1", model.RoleUser)

	require.NoError(t, f.accounts.SetStatus(ctx, u.UID, model.UserSuspended))
	got, err := f.users.GetByID(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, model.UserSuspended, got.Status)

	n := f.rec.last()
	assert.Equal(t, model.NoticeAccountStatus, n.kind)

	require.NoError(t, f.accounts.SetStatus(ctx, u.UID, model.UserActive))
	got, err = f.users.GetByID(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, model.UserActive, got.Status)
}

// Suspension never deletes: the suspended owner keeps every row.
func TestSuspensionRetainsOwnedRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner1", model.RoleOwner)
	guest := f.seedUser(t, "guest1", model.RoleUser)
	p := f.seedProperty(t, "p1", owner.UID, model.PropertyVerified)
	f.seedBooking(t, "b1", guest.UID, p.ID, model.BookingPending)

	require.NoError(t, f.accounts.SetStatus(ctx, owner.UID, model.UserSuspended))

	props, err := f.props.ListByOwner(ctx, owner.UID)
	require.NoError(t, err)
	assert.Len(t, props, 1)
	bookings, err := f.bookings.ListForOwner(ctx, owner.UID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestModerationRefusesAdminTargets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.seedUser(t, "admin1", model.RoleAdmin)

	require.ErrorIs(t, f.accounts.SetStatus(ctx, admin.UID, model.UserSuspended), repository.ErrForbidden)
	require.ErrorIs(t, f.accounts.SetRole(ctx, admin.UID, model.RoleUser), repository.ErrForbidden)
	require.ErrorIs(t, f.accounts.Delete(ctx, admin.UID), repository.ErrForbidden)

	got, err := f.users.GetByID(ctx, admin.UID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.Equal(t, model.UserActive, got.Status)
}

func TestSetRoleAllowsOnlyUserOwnerFlips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "u1", model.RoleUser)

	require.ErrorIs(t, f.accounts.SetRole(ctx, u.UID, model.RoleAdmin), repository.ErrForbidden)

	require.NoError(t, f.accounts.SetRole(ctx, u.UID, model.RoleOwner))
	got, err := f.users.GetByID(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, got.Role)
}

func TestDeleteCascadesOwnedRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner1", model.RoleOwner)
	guest := f.seedUser(t, "guest1", model.RoleUser)
	p := f.seedProperty(t, "p1", owner.UID, model.PropertyVerified)
	f.seedBooking(t, "b1", guest.UID, p.ID, model.BookingPending)

	require.NoError(t, f.accounts.Delete(ctx, owner.UID))

	_, err := f.props.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, repository.ErrPropertyNotFound)
	// The guest's booking went with the listing.
	_, err = f.bookings.GetByID(ctx, "b1")
	require.ErrorIs(t, err, repository.ErrBookingNotFound)
}
