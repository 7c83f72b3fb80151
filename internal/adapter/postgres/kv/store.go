// Package kv implements the key-value store on a PostgreSQL table.
package kv

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/kairon-web/internal/adapter/postgres"
)

const table = "kv_store"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store persists string values in the kv_store table.
type Store struct {
	db postgres.Querier
}

// New creates a store on top of pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// NewWithQuerier creates a store on any Querier (a pool, a transaction or a
// mock).
func NewWithQuerier(q postgres.Querier) *Store {
	return &Store{db: q}
}

// Get returns the value stored at key, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	query, args, err := psql.
		Select("value").
		From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build kv select: %w", err)
	}

	var value string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", postgres.MapError(err, "kv", key)
	}
	return value, nil
}

// Set inserts or replaces the value at key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	query, args, err := psql.
		Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv upsert: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "kv", key)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv delete: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "kv", key)
	}
	return nil
}
