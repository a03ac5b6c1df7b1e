package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects a pool to the database at url.
func NewStore(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return NewStoreFromPool(pool), nil
}

// NewStoreFromPool wraps an existing pool. Close closes the pool.
func NewStoreFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	pgTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	// No-op after commit.
	defer func() {
		_ = pgTx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(&txStore{q: pgTx}); err != nil {
		return err
	}

	return pgTx.Commit(ctx)
}

func (s *Store) Tenants() store.Tenants         { return &tenantsRepo{q: s.pool} }
func (s *Store) Memberships() store.Memberships { return &membershipsRepo{q: s.pool} }
func (s *Store) Invites() store.Invites         { return &invitesRepo{q: s.pool} }
func (s *Store) Users() store.Users             { return &usersRepo{q: s.pool} }

type txStore struct {
	q querier
}

func (t *txStore) Tenants() store.Tenants         { return &tenantsRepo{q: t.q} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{q: t.q} }
func (t *txStore) Invites() store.Invites         { return &invitesRepo{q: t.q} }
func (t *txStore) Users() store.Users             { return &usersRepo{q: t.q} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", store.ErrAlreadyExists, pgErr.ConstraintName)
	}
	return err
}

func mapRole(s string) (domain.Role, error) {
	r, err := domain.ParseRole(s)
	if err != nil {
		return "", fmt.Errorf("postgres: stored role %q: %w", s, err)
	}
	return r, nil
}
