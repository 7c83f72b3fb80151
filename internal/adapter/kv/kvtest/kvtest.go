// Package kvtest holds the behavior suite every kv.Store backend must pass.
package kvtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/adapter/kv"
	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Run exercises store with round-trip, overwrite, delete and concurrent
// writers. Keys are namespaced per call so backends may be shared.
func Run(t *testing.T, store kv.Store) {
	t.Helper()
	ns := uuid.NewString()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		if _, err := store.Get(ctx, ns+":missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Get(missing) = %v, want ErrNotFound", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		key := ns + ":routines"
		want := `[{"id":"r1","title":"Đọc sách"}]`
		if err := store.Set(ctx, key, want); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != want {
			t.Errorf("Get = %q, want %q", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		key := ns + ":roadmap"
		for _, v := range []string{"first", "second"} {
			if err := store.Set(ctx, key, v); err != nil {
				t.Fatalf("Set(%s): %v", v, err)
			}
		}
		if got, _ := store.Get(ctx, key); got != "second" {
			t.Errorf("Get = %q, want second", got)
		}
	})

	t.Run("empty value", func(t *testing.T) {
		key := ns + ":empty"
		if err := store.Set(ctx, key, ""); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := store.Get(ctx, key)
		if err != nil || got != "" {
			t.Errorf("Get = %q, %v; want empty value", got, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		key := ns + ":checks_2025-01-01"
		if err := store.Set(ctx, key, "{}"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := store.Delete(ctx, key); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := store.Get(ctx, key); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get after Delete = %v, want ErrNotFound", err)
		}
		if err := store.Delete(ctx, key); err != nil {
			t.Errorf("Delete(missing) = %v, want nil", err)
		}
	})

	t.Run("concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := fmt.Sprintf("%s:c%d", ns, i)
				if err := store.Set(ctx, key, key); err != nil {
					t.Errorf("Set(%s): %v", key, err)
				}
			}()
		}
		wg.Wait()

		for i := range 16 {
			key := fmt.Sprintf("%s:c%d", ns, i)
			if got, err := store.Get(ctx, key); err != nil || got != key {
				t.Errorf("Get(%s) = %q, %v", key, got, err)
			}
		}
	})
}
