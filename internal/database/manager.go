package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

type managerState int

const (
	stateEmpty managerState = iota
	stateInitializing
	stateReady
)

// Manager gates all access to the shared store handle. The first
// Acquire in the process's lifetime runs the full initialization
// sequence (open file, apply schema, verify structure, seed); every
// concurrent caller blocks until that single attempt resolves and
// shares its outcome. Without this gate, two cold-start callers would
// race their own CREATE TABLE and seeding runs and corrupt the seed
// data or trip spurious "table exists" errors.
type Manager struct {
	path       string
	bcryptCost int

	mu   sync.Mutex
	cond *sync.Cond

	state managerState
	db    *sql.DB

	// gen counts initialization attempts; failedGen/lastErr record the
	// most recent failed attempt so waiters of that attempt receive its
	// error while later callers start fresh.
	gen       uint64
	failedGen uint64
	lastErr   error
}

// NewManager returns an uninitialized Manager for the given store
// file. Nothing is opened until the first Acquire.
func NewManager(path string, bcryptCost int) *Manager {
	m := &Manager{path: path, bcryptCost: bcryptCost}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Acquire returns the shared handle, initializing the store on first
// use. Concurrency contract:
//
//   - state ready: return the handle immediately.
//   - state initializing: block until the in-flight attempt resolves;
//     return its handle, or its error if it failed.
//   - state empty: become the sole initializer. On failure the handle
//     is closed and the state fully unwinds so the next call retries a
//     fresh initialization; there is no poisoned permanent-failure
//     state.
//
// Schema drift is reported as *SchemaIntegrityError; every other
// initialization failure is wrapped in *InitializationError.
func (m *Manager) Acquire(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		switch m.state {
		case stateReady:
			return m.db, nil

		case stateInitializing:
			gen := m.gen
			m.cond.Wait()
			if m.state == stateReady {
				return m.db, nil
			}
			// The attempt we were waiting on failed; its error
			// propagates to every waiter of that attempt. A waiter that
			// raced past a newer attempt loops instead.
			if m.failedGen == gen && m.lastErr != nil {
				return nil, m.lastErr
			}

		case stateEmpty:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			m.gen++
			gen := m.gen
			m.state = stateInitializing
			m.mu.Unlock()
			db, err := m.initialize(ctx)
			m.mu.Lock()
			if err != nil {
				m.state = stateEmpty
				m.failedGen = gen
				m.lastErr = err
				m.cond.Broadcast()
				return nil, err
			}
			m.db = db
			m.state = stateReady
			m.lastErr = nil
			m.cond.Broadcast()
			return db, nil
		}
	}
}

// initialize runs the one-time sequence outside the lock. Any step
// failing closes the partially opened handle before returning.
func (m *Manager) initialize(ctx context.Context) (*sql.DB, error) {
	db, err := Open(m.path)
	if err != nil {
		return nil, &InitializationError{Stage: "open", Err: err}
	}
	if err := Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, &InitializationError{Stage: "schema", Err: err}
	}
	if err := Check(ctx, db); err != nil {
		_ = db.Close()
		// Drift is fatal; surface it untranslated so callers can tell
		// it apart from retryable initialization failures.
		var drift *SchemaIntegrityError
		if errors.As(err, &drift) {
			return nil, err
		}
		return nil, &InitializationError{Stage: "schema", Err: err}
	}
	if err := Seed(ctx, db, m.bcryptCost); err != nil {
		_ = db.Close()
		return nil, &InitializationError{Stage: "seed", Err: err}
	}
	return db, nil
}

// Close releases the shared handle. Idempotent: calling it when
// nothing was ever acquired, or calling it twice, is a no-op. A later
// Acquire reopens the store.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != stateReady || m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	m.state = stateEmpty
	return err
}
