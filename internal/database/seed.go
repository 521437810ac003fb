package database

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/utils"
)

// seedAccount is one fixed bootstrap account. These exist so a fresh
// store is immediately usable in development; the plaintext passwords
// below are a development-only seed path, not a credential-handling
// design.
type seedAccount struct {
	uid      string
	name     string
	email    string
	password string
	role     string
	status   string
}

var bootstrapAccounts = []seedAccount{
	{"usr-seed-admin", "Platform Admin", "admin@renthaven.example", "admin123", model.RoleAdmin, model.UserActive},
	{"usr-seed-owner", "Demo Owner", "owner@renthaven.example", "owner123", model.RoleOwner, model.UserActive},
	{"usr-seed-guest", "Demo User", "user@renthaven.example", "user123", model.RoleUser, model.UserActive},
}

// Seed inserts the default platform settings and the fixed bootstrap
// accounts. Settings are written only when the key is absent so an
// operator-modified value is never overwritten. Accounts are keyed by
// email: absent rows are inserted, and a row whose stored role, status
// or credentials drifted from the expected bootstrap values is updated
// in place; the update never touches the row's uid.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	for key, value := range model.SettingRows(model.DefaultPlatformSettings()) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO platformSettings (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
			key, value)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	for _, acc := range bootstrapAccounts {
		if err := seedAccountRow(ctx, db, acc, bcryptCost); err != nil {
			return fmt.Errorf("seed account %s: %w", acc.email, err)
		}
	}
	return nil
}

func seedAccountRow(ctx context.Context, db *sql.DB, acc seedAccount, bcryptCost int) error {
	var (
		uid    string
		hash   string
		role   string
		status string
	)
	err := db.QueryRowContext(ctx,
		`SELECT uid, passwordHash, role, status FROM users WHERE email = ?`,
		acc.email).Scan(&uid, &hash, &role, &status)
	if err == sql.ErrNoRows {
		newHash, err := utils.HashPassword(acc.password, bcryptCost)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO users (uid, name, email, passwordHash, role, status) VALUES (?, ?, ?, ?, ?, ?)`,
			acc.uid, acc.name, acc.email, newHash, acc.role, acc.status)
		return err
	}
	if err != nil {
		return err
	}

	// Row exists: restore the expected bootstrap values when they
	// drifted, preserving the identity key the rest of the schema
	// references.
	credentialsOK := bcrypt.CompareHashAndPassword([]byte(hash), []byte(acc.password)) == nil
	if credentialsOK && role == acc.role && status == acc.status {
		return nil
	}
	newHash := hash
	if !credentialsOK {
		rehashed, err := utils.HashPassword(acc.password, bcryptCost)
		if err != nil {
			return err
		}
		newHash = rehashed
	}
	_, err = db.ExecContext(ctx,
		`UPDATE users SET passwordHash = ?, role = ?, status = ? WHERE uid = ?`,
		newHash, acc.role, acc.status, uid)
	return err
}
