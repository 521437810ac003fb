package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "store.db")
}

// All concurrent first-time acquires must share a single
// initialization: every caller gets the same handle and the seed data
// exists exactly once.
func TestAcquireConcurrentSingleInitialization(t *testing.T) {
	m := NewManager(testStorePath(t), bcrypt.MinCost)
	defer m.Close()

	const callers = 32
	var wg sync.WaitGroup
	handles := make([]any, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := m.Acquire(context.Background())
			handles[i] = db
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, handles[0], handles[i], "caller %d got a different handle", i)
	}

	db, err := m.Acquire(context.Background())
	require.NoError(t, err)

	var accounts int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&accounts))
	assert.Equal(t, len(bootstrapAccounts), accounts, "seeding must run exactly once")

	var settings int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM platformSettings`).Scan(&settings))
	assert.Equal(t, 8, settings)
}

func TestAcquireFailureUnwindsAndRetries(t *testing.T) {
	// /dev/null is a file, so creating a directory underneath it fails
	// during the open stage.
	m := NewManager("/dev/null/sub/store.db", bcrypt.MinCost)

	_, err := m.Acquire(context.Background())
	require.Error(t, err)
	var initErr *InitializationError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "open", initErr.Stage)

	// The failure must not poison the manager: a second call attempts
	// a fresh initialization (and fails the same way) instead of
	// hanging or replaying a cached future.
	_, err = m.Acquire(context.Background())
	require.Error(t, err)
	require.ErrorAs(t, err, &initErr)
}

func TestAcquireConcurrentFailurePropagatesToWaiters(t *testing.T) {
	m := NewManager("/dev/null/sub/store.db", bcrypt.MinCost)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Acquire(context.Background())
		}(i)
	}
	wg.Wait()
	for i := 0; i < callers; i++ {
		assert.Error(t, errs[i], "caller %d must observe the failure", i)
	}
}

func TestAcquireSurfacesSchemaDrift(t *testing.T) {
	path := testStorePath(t)

	// Pre-create a store whose bookings FK points at users.email
	// instead of the canonical identity column.
	db, err := Open(path)
	require.NoError(t, err)
	stmts := []string{
		`CREATE TABLE users (
			uid TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			passwordHash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			status TEXT NOT NULL DEFAULT 'active',
			mobile TEXT, avatarUrl TEXT,
			createdAt TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE properties (
			id TEXT PRIMARY KEY,
			ownerId TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			title TEXT NOT NULL, description TEXT, price REAL NOT NULL DEFAULT 0,
			location TEXT, imageUrl TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			createdAt TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			userId TEXT NOT NULL REFERENCES users(email) ON DELETE CASCADE,
			propertyId TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
			startDate TEXT NOT NULL, endDate TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			bookingDate TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	m := NewManager(path, bcrypt.MinCost)
	_, err = m.Acquire(context.Background())
	require.Error(t, err)
	var drift *SchemaIntegrityError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, "bookings", drift.Table)
}

func TestCloseIdempotentAndReacquirable(t *testing.T) {
	m := NewManager(testStorePath(t), bcrypt.MinCost)

	// Closing before any acquire is a no-op.
	require.NoError(t, m.Close())

	first, err := m.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	second, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	require.NoError(t, m.Close())
}

func TestAcquireRespectsCancelledContext(t *testing.T) {
	m := NewManager(testStorePath(t), bcrypt.MinCost)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Acquire(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
