// Package store scopes database access to request-sized units of work.
// A Session is one pooled connection held for the lifetime of a single
// request: acquire at entry, release on every exit path.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the minimal query surface shared by a Session and pgx.Tx.
// Repository code should accept Querier so the same operations work
// inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Session is a handle bound to one backing connection. It must not be
// shared across requests and must be released exactly once.
type Session interface {
	Querier

	// WithTx runs fn inside a transaction on this session's connection.
	// It commits when fn returns nil and rolls back on error or panic.
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error

	// Release returns the connection to the pool. Safe to defer
	// unconditionally right after Acquire.
	Release()
}

// Provider hands out one Session per request from a shared pool.
type Provider struct {
	pool *pgxpool.Pool
}

// NewProvider wraps an already opened pool. The pool stays owned by the
// caller; closing it is not the provider's job.
func NewProvider(pool *pgxpool.Pool) *Provider {
	return &Provider{pool: pool}
}

// Acquire checks a connection out of the pool and binds it to a Session.
func (p *Provider) Acquire(ctx context.Context) (Session, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: acquire session: %w", err)
	}
	return &session{conn: conn}, nil
}

// Ping verifies the backing store is reachable.
func (p *Provider) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

type session struct {
	conn *pgxpool.Conn
}

func (s *session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return s.conn.Exec(ctx, sql, args...)
}

func (s *session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.conn.Query(ctx, sql, args...)
}

func (s *session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.conn.QueryRow(ctx, sql, args...)
}

func (s *session) WithTx(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: commit tx: %w", err)
	}
	return nil
}

func (s *session) Release() {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}
}
