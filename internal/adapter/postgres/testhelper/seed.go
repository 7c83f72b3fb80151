package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientKey returns a key under a fresh client namespace so parallel tests
// never share rows.
func ClientKey(name string) string {
	return uuid.NewString() + ":" + name
}

// SeedValue writes a raw kv_store row, bypassing the store under test.
func SeedValue(t *testing.T, pool *pgxpool.Pool, key, value string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO kv_store (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		t.Fatalf("testhelper: seed %s: %v", key, err)
	}
}
