package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

// NewStore opens a sqlite database. The pool is pinned to one connection:
// sqlite allows a single writer and ":memory:" databases are per-connection.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	s, err := NewStoreFromDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreFromDB wraps an already opened handle.
func NewStoreFromDB(db *sql.DB) (*Store, error) {
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Safe to call after commit; covers early returns and panics.
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(&txStore{q: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

func (s *Store) Tenants() store.Tenants         { return &tenantsRepo{q: s.db} }
func (s *Store) Memberships() store.Memberships { return &membershipsRepo{q: s.db} }
func (s *Store) Invites() store.Invites         { return &invitesRepo{q: s.db} }
func (s *Store) Users() store.Users             { return &usersRepo{q: s.db} }

type txStore struct {
	q dbtx
}

func (t *txStore) Tenants() store.Tenants         { return &tenantsRepo{q: t.q} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{q: t.q} }
func (t *txStore) Invites() store.Invites         { return &invitesRepo{q: t.q} }
func (t *txStore) Users() store.Users             { return &usersRepo{q: t.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique/primary key violations into ErrAlreadyExists.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}

	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		case sqlite3.SQLITE_CONSTRAINT:
			// Extended codes disabled on this connection.
			if strings.Contains(se.Error(), "UNIQUE constraint failed") {
				return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
			}
		}
	}
	return err
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func mapNullMillis(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromMillis(n.Int64)
	return &t
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func encodeDocument(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func mapRole(s string) (domain.Role, error) {
	r, err := domain.ParseRole(s)
	if err != nil {
		return "", fmt.Errorf("sqlite: stored role %q: %w", s, err)
	}
	return r, nil
}
