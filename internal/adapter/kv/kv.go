// Package kv defines the key-value store contract shared by the storage
// backends of the prototype tools.
package kv

import "context"

// Store is a flat string key-value store. Get returns domain.ErrNotFound
// for a missing key; Delete of a missing key succeeds.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
