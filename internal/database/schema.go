package database

import (
	"context"
	"database/sql"
	"fmt"
)

// ddl declares the full relational schema. Every statement uses
// IF NOT EXISTS so applying it against an already-correct store is a
// no-op; the Verifier, not this file, is responsible for catching a
// store whose tables exist but drifted from these declarations.
//
// users.uid is the canonical identity column: every owned table
// references it with ON DELETE CASCADE, except contactMessages which
// sets userId to NULL so support history outlives the account.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
		uid          TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		email        TEXT NOT NULL UNIQUE,
		passwordHash TEXT NOT NULL,
		role         TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','owner','admin')),
		status       TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','pending','suspended')),
		mobile       TEXT,
		avatarUrl    TEXT,
		createdAt    TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS properties (
		id          TEXT PRIMARY KEY,
		ownerId     TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT,
		price       REAL NOT NULL DEFAULT 0,
		location    TEXT,
		imageUrl    TEXT,
		status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','verified','rejected')),
		createdAt   TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id          TEXT PRIMARY KEY,
		userId      TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
		propertyId  TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		startDate   TEXT NOT NULL,
		endDate     TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','cancelled')),
		bookingDate TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS contactMessages (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		userId          TEXT REFERENCES users(uid) ON DELETE SET NULL,
		name            TEXT NOT NULL,
		email           TEXT NOT NULL,
		subject         TEXT NOT NULL,
		message         TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'unseen' CHECK (status IN ('unseen','seen')),
		reply_text      TEXT,
		reply_timestamp TEXT,
		has_admin_reply INTEGER NOT NULL DEFAULT 0,
		createdAt       TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS roleRequests (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		userId           TEXT NOT NULL UNIQUE REFERENCES users(uid) ON DELETE CASCADE,
		requestedRole    TEXT NOT NULL DEFAULT 'owner',
		status           TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','rejected')),
		requestTimestamp TEXT NOT NULL DEFAULT (datetime('now')),
		actionTimestamp  TEXT,
		adminNotes       TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		userId    TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
		type      TEXT NOT NULL,
		title     TEXT NOT NULL,
		message   TEXT NOT NULL,
		status    TEXT NOT NULL DEFAULT 'unread' CHECK (status IN ('unread','read')),
		relatedId TEXT,
		createdAt TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS platformSettings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	// Indexes on every foreign key column plus the status columns the
	// moderation queues filter on.
	`CREATE INDEX IF NOT EXISTS idx_properties_ownerId ON properties(ownerId)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(status)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_userId ON bookings(userId)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_propertyId ON bookings(propertyId)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
	`CREATE INDEX IF NOT EXISTS idx_contactMessages_userId ON contactMessages(userId)`,
	`CREATE INDEX IF NOT EXISTS idx_contactMessages_status ON contactMessages(status)`,
	`CREATE INDEX IF NOT EXISTS idx_roleRequests_status ON roleRequests(status)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_userId ON notifications(userId)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_status ON notifications(status)`,
}

// Apply creates all tables and indexes. Idempotent: running it against
// an already-correct schema changes nothing.
func Apply(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
