package repository

import (
	"context"
	"database/sql"
	"sort"

	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// SettingsRepo is the typed boundary over the platformSettings
// key/value table. Values are stored as strings; the model package
// owns the per-key encode/decode rules.
type SettingsRepo struct{ DB *sql.DB }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{DB: db} }

// GetAll returns the complete typed settings record. Persisted rows
// are merged onto the hardcoded defaults, so a fresh or partially
// populated table still yields every field. Rows with unknown keys or
// unparseable values are skipped, leaving the default in place.
func (r *SettingsRepo) GetAll(ctx context.Context) (model.PlatformSettings, error) {
	s := model.DefaultPlatformSettings()
	rows, err := r.DB.QueryContext(ctx, `SELECT key, value FROM platformSettings`)
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return s, err
		}
		model.ApplySettingRow(&s, key, value)
	}
	return s, rows.Err()
}

// UpdatePartial applies a patch of raw JSON values and returns the
// number of keys whose effective value actually changed. Unknown keys
// and values of the wrong type are silently ignored so a newer or
// older UI can send fields this store does not understand.
func (r *SettingsRepo) UpdatePartial(ctx context.Context, patch map[string]any) (int, error) {
	if len(patch) == 0 {
		return 0, nil
	}

	current, err := r.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	currentRows := model.SettingRows(current)

	// Deterministic write order keeps retries and tests stable.
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	changed := 0
	for _, key := range keys {
		encoded, ok := model.EncodeSettingValue(key, patch[key])
		if !ok {
			continue
		}
		if currentRows[key] == encoded {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO platformSettings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, encoded)
		if err != nil {
			return 0, err
		}
		changed++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return changed, nil
}
