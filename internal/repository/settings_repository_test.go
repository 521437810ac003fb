package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

func TestGetAllOnFreshTableYieldsDefaults(t *testing.T) {
	repo := NewSettingsRepo(newTestDB(t))
	s, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPlatformSettings(), s)
}

func TestGetAllMergesPersistedRowsOntoDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepo(db)

	// Partially populated table: only two keys present.
	_, err := db.Exec(`INSERT INTO platformSettings (key, value) VALUES
		('maintenanceMode', 'true'),
		('maxBookingsPerUser', '3')`)
	require.NoError(t, err)

	s, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.True(t, s.MaintenanceMode)
	assert.Equal(t, 3, s.MaxBookingsPerUser)
	// Everything else still carries the default.
	assert.Equal(t, model.DefaultPlatformSettings().SiteName, s.SiteName)
	assert.Equal(t, model.DefaultPlatformSettings().CommissionRate, s.CommissionRate)
}

func TestGetAllSkipsUnknownAndMalformedRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepo(db)

	_, err := db.Exec(`INSERT INTO platformSettings (key, value) VALUES
		('notARealSetting', 'whatever'),
		('maxBookingsPerUser', 'not-a-number')`)
	require.NoError(t, err)

	s, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPlatformSettings(), s)
}

func TestUpdatePartialCountsOnlyActualChanges(t *testing.T) {
	repo := NewSettingsRepo(newTestDB(t))
	ctx := context.Background()

	changed, err := repo.UpdatePartial(ctx, map[string]any{
		"maintenanceMode":    true,
		"maxBookingsPerUser": float64(5),
		"siteName":           model.DefaultPlatformSettings().SiteName, // no-op
	})
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	s, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, s.MaintenanceMode)
	assert.Equal(t, 5, s.MaxBookingsPerUser)

	// Re-applying the same patch changes nothing.
	changed, err = repo.UpdatePartial(ctx, map[string]any{
		"maintenanceMode":    true,
		"maxBookingsPerUser": float64(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestUpdatePartialIgnoresUnknownKeysAndWrongTypes(t *testing.T) {
	repo := NewSettingsRepo(newTestDB(t))
	ctx := context.Background()

	changed, err := repo.UpdatePartial(ctx, map[string]any{
		"notARealSetting": "x",
		"maintenanceMode": "true", // string where bool expected
		"commissionRate":  0.08,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	s, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, s.MaintenanceMode)
	assert.Equal(t, 0.08, s.CommissionRate)
}

func TestSettingsRoundTripTypes(t *testing.T) {
	repo := NewSettingsRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.UpdatePartial(ctx, map[string]any{
		"siteName":           "Harbor Homes",
		"allowRegistration":  false,
		"maxBookingsPerUser": float64(7),
		"commissionRate":     0.125,
	})
	require.NoError(t, err)

	s, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Homes", s.SiteName)
	assert.False(t, s.AllowRegistration)
	assert.Equal(t, 7, s.MaxBookingsPerUser)
	assert.Equal(t, 0.125, s.CommissionRate)
}
