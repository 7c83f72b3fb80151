// Package file implements kv.Store as one JSON document per key namespace.
package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

const defaultNamespace = "_shared"

// Store keeps "<namespace>:<name>" keys in <dir>/<namespace>.json. Writes
// replace the document atomically.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create kv dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(s.path(key))
	if err != nil {
		return "", err
	}
	v, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("kv %s: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	doc, err := s.read(path)
	if err != nil {
		return err
	}
	doc[key] = value
	return writeJSONAtomic(path, doc)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	doc, err := s.read(path)
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	if len(doc) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		return nil
	}
	return writeJSONAtomic(path, doc)
}

// Ping checks that the data directory is still a writable directory.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat kv dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("kv dir %s is not a directory", s.dir)
	}
	tmp, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("kv dir not writable: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	return os.Remove(name)
}

func (s *Store) path(key string) string {
	ns, _, ok := strings.Cut(key, ":")
	if !ok || ns == "" {
		ns = defaultNamespace
	}
	return filepath.Join(s.dir, safeName(ns)+".json")
}

func (s *Store) read(path string) (map[string]string, error) {
	doc := map[string]string{}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// safeName keeps [A-Za-z0-9_-] names (uuids) as they are and hashes
// anything else.
func safeName(ns string) string {
	for _, r := range ns {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			sum := sha256.Sum256([]byte(ns))
			return hex.EncodeToString(sum[:16])
		}
	}
	return ns
}

func writeJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err == nil {
		return nil
	}

	defer os.Remove(tmp)

	if runtime.GOOS == "windows" {
		_ = os.Remove(path)
	}
	return os.Rename(tmp, path)
}
