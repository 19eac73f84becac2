// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rulecheck/pkg/types"
)

// matchQuery evaluates the containment predicate inside SQLite. instr is
// an exact, case-sensitive substring search, so the result equals Match.
const matchQuery = `SELECT EXISTS (
	SELECT 1 FROM identifiers WHERE instr(?, id) > 0 OR instr(id, ?) > 0
)`

// SQLiteIndex holds identifiers in an in-memory SQLite table and answers
// matches with a single query per statement.
type SQLiteIndex struct {
	db    *sql.DB
	query *sql.Stmt
}

// NewSQLiteIndex loads ids into a private in-memory database.
func NewSQLiteIndex(ctx context.Context, ids types.IdentifierSet) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening identifier index: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	idx := &SQLiteIndex{db: db}
	if err := idx.load(ctx, ids); err != nil {
		db.Close()
		return nil, err
	}

	idx.query, err = db.PrepareContext(ctx, matchQuery)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing match query: %w", err)
	}
	return idx, nil
}

func (s *SQLiteIndex) load(ctx context.Context, ids types.IdentifierSet) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE identifiers (id TEXT PRIMARY KEY) WITHOUT ROWID`,
	); err != nil {
		return fmt.Errorf("creating identifier table: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO identifiers (id) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids.Sorted() {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("inserting identifier %q: %w", id, err)
		}
	}
	return tx.Commit()
}

// Matches implements Matcher.
func (s *SQLiteIndex) Matches(ctx context.Context, lower string) (bool, error) {
	var found bool
	if err := s.query.QueryRowContext(ctx, lower, lower).Scan(&found); err != nil {
		return false, fmt.Errorf("querying identifier index: %w", err)
	}
	return found, nil
}

// Len returns the number of indexed identifiers.
func (s *SQLiteIndex) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM identifiers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting identifiers: %w", err)
	}
	return n, nil
}

// Close implements Matcher.
func (s *SQLiteIndex) Close() error {
	if s.query != nil {
		s.query.Close()
	}
	return s.db.Close()
}
