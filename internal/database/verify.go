package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// fkEdge is one declared foreign-key relationship the live store must
// carry. refCol is always the canonical identity column of the
// referenced table; pointing at any other column is drift.
type fkEdge struct {
	table    string
	column   string
	refTable string
	refCol   string
	onDelete string
}

var fkEdges = []fkEdge{
	{"properties", "ownerId", "users", "uid", "CASCADE"},
	{"bookings", "userId", "users", "uid", "CASCADE"},
	{"bookings", "propertyId", "properties", "id", "CASCADE"},
	{"contactMessages", "userId", "users", "uid", "SET NULL"},
	{"roleRequests", "userId", "users", "uid", "CASCADE"},
	{"notifications", "userId", "users", "uid", "CASCADE"},
}

// Check introspects the live structure of the store and fails with a
// SchemaIntegrityError on any divergence from the declarations above.
// It runs on every cold start, immediately after Apply, and never
// coerces a mismatch: a store whose foreign keys point at a
// non-canonical identity column would make every subsequent write fail
// somewhere deep inside a workflow, so the drift is surfaced here
// instead.
func Check(ctx context.Context, db *sql.DB) error {
	// The users primary key must be the canonical identity column, and
	// no legacy identity column may survive alongside it. A spare `id`
	// column on users is the classic drift signal left behind by older
	// schema revisions.
	cols, err := tableColumns(ctx, db, "users")
	if err != nil {
		return err
	}
	var pk []string
	hasLegacyID := false
	for _, c := range cols {
		if c.pk > 0 {
			pk = append(pk, c.name)
		}
		if c.name == "id" {
			hasLegacyID = true
		}
	}
	if len(pk) != 1 || pk[0] != "uid" {
		return &SchemaIntegrityError{
			Table:  "users",
			Detail: fmt.Sprintf("primary key is (%s), want (uid)", strings.Join(pk, ",")),
		}
	}
	if hasLegacyID {
		return &SchemaIntegrityError{
			Table:  "users",
			Detail: "legacy identity column id present alongside uid",
		}
	}

	for _, edge := range fkEdges {
		if err := checkEdge(ctx, db, edge); err != nil {
			return err
		}
	}
	return nil
}

// columnInfo mirrors one row of PRAGMA table_info.
type columnInfo struct {
	name string
	pk   int
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]columnInfo, error) {
	// PRAGMA arguments cannot be bound; table names here come from the
	// fixed declarations above, never from input.
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []columnInfo
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, columnInfo{name: name, pk: pk})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, &SchemaIntegrityError{Table: table, Detail: "table missing"}
	}
	return cols, nil
}

// checkEdge confirms that the live foreign-key list of edge.table has
// an entry whose source column matches and whose target is the
// canonical identity column with the declared ON DELETE action, not
// merely that some foreign key exists on the table.
func checkEdge(ctx context.Context, db *sql.DB, edge fkEdge) error {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", edge.table))
	if err != nil {
		return err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			id, seq            int
			refTable, from     string
			to                 sql.NullString
			onUpdate, onDelete string
			match              string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return err
		}
		if from != edge.column {
			continue
		}
		found = true
		if refTable != edge.refTable {
			return &SchemaIntegrityError{
				Table:  edge.table,
				Detail: fmt.Sprintf("%s references table %s, want %s", edge.column, refTable, edge.refTable),
			}
		}
		// SQLite leaves `to` NULL when the FK names only the referenced
		// table; the target then is that table's primary key, which we
		// resolve explicitly rather than assume.
		target := to.String
		if !to.Valid || target == "" {
			resolved, err := primaryKeyColumn(ctx, db, edge.refTable)
			if err != nil {
				return err
			}
			target = resolved
		}
		if target != edge.refCol {
			return &SchemaIntegrityError{
				Table:  edge.table,
				Detail: fmt.Sprintf("%s references %s.%s, want %s.%s", edge.column, refTable, target, edge.refTable, edge.refCol),
			}
		}
		if !strings.EqualFold(onDelete, edge.onDelete) {
			return &SchemaIntegrityError{
				Table:  edge.table,
				Detail: fmt.Sprintf("%s has ON DELETE %s, want %s", edge.column, onDelete, edge.onDelete),
			}
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !found {
		return &SchemaIntegrityError{
			Table:  edge.table,
			Detail: fmt.Sprintf("missing foreign key on %s", edge.column),
		}
	}
	return nil
}

func primaryKeyColumn(ctx context.Context, db *sql.DB, table string) (string, error) {
	cols, err := tableColumns(ctx, db, table)
	if err != nil {
		return "", err
	}
	for _, c := range cols {
		if c.pk == 1 {
			return c.name, nil
		}
	}
	return "", &SchemaIntegrityError{Table: table, Detail: "no primary key"}
}
