// Package database owns the store lifecycle: opening the single shared
// SQLite handle, declaring and applying the schema, verifying the live
// structure against what the code expects, and seeding defaults. All
// of it runs exactly once per process behind the Manager.
package database

import "fmt"

// SchemaIntegrityError reports structural drift between the declared
// schema and the live store file: wrong primary key, a missing foreign
// key, or a foreign key pointing at the wrong column. It is fatal and
// non-retryable; the process must not serve workflow operations until
// the store is fixed. Failing here turns what would otherwise surface
// as a cryptic column-not-found error deep inside a workflow into an
// obvious startup error.
type SchemaIntegrityError struct {
	Table  string
	Detail string
}

func (e *SchemaIntegrityError) Error() string {
	return fmt.Sprintf("schema integrity: table %q: %s", e.Table, e.Detail)
}

// InitializationError wraps any failure during first-use
// initialization other than schema drift (opening the file, applying
// DDL, seeding). It is retryable: the Manager unwinds fully, so the
// next Acquire attempts a fresh initialization instead of replaying a
// cached failure.
type InitializationError struct {
	Stage string // "open", "schema" or "seed"
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("store initialization (%s): %v", e.Stage, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }
