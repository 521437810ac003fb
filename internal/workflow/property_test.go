package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

func TestNewListingsAlwaysStartPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner1", model.RoleOwner)

	p := &model.Property{ID: "p1", OwnerID: owner.UID, Title: "Loft", Price: 90,
		Status: model.PropertyVerified} // caller-supplied status is ignored
	require.NoError(t, f.properties.Create(ctx, p))

	got, err := f.props.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, model.PropertyPending, got.Status)
}

func TestModerationDecidesOnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner1", model.RoleOwner)
	p := f.seedProperty(t, "p1", owner.UID, model.PropertyPending)

	require.NoError(t, f.properties.Approve(ctx, p.ID))
	got, err := f.props.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyVerified, got.Status)

	n := f.rec.last()
	assert.Equal(t, owner.UID, n.userID)
	assert.Equal(t, model.NoticePropertyStatus, n.kind)

	// Second decision, either direction, must refuse.
	require.ErrorIs(t, f.properties.Approve(ctx, p.ID), repository.ErrStateConflict)
	require.ErrorIs(t, f.properties.Reject(ctx, p.ID), repository.ErrStateConflict)
}

func TestOwnerEditOfRejectedListingTriggersReReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner1", model.RoleOwner)
	p := f.seedProperty(t, "p1", owner.UID, model.PropertyPending)
	require.NoError(t, f.properties.Reject(ctx, p.ID))

	p.Title = "Loft, renovated"
	updated, err := f.properties.OwnerUpdate(ctx, owner.UID, p)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyPending, updated.Status)
	assert.Equal(t, "Loft, renovated", updated.Title)
}

func TestOwnerEditOfVerifiedListingKeepsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner1", model.RoleOwner)
	p := f.seedProperty(t, "p1", owner.UID, model.PropertyPending)
	require.NoError(t, f.properties.Approve(ctx, p.ID))

	p.Price = 240
	updated, err := f.properties.OwnerUpdate(ctx, owner.UID, p)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyVerified, updated.Status)
	assert.Equal(t, float64(240), updated.Price)
}

func TestOwnerUpdateChecksOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner1", model.RoleOwner)
	other := f.seedUser(t, "owner2", model.RoleOwner)
	p := f.seedProperty(t, "p1", owner.UID, model.PropertyPending)

	_, err := f.properties.OwnerUpdate(ctx, other.UID, p)
	require.ErrorIs(t, err, repository.ErrForbidden)

	require.ErrorIs(t, f.properties.OwnerDelete(ctx, other.UID, p.ID), repository.ErrForbidden)
	require.NoError(t, f.properties.OwnerDelete(ctx, owner.UID, p.ID))
	_, err = f.props.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, repository.ErrPropertyNotFound)
}
