package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
	"github.com/heartmarshall/kairon-web/pkg/keylock"
)

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const roadmapKey = "roadmap"

// Service implements the learning roadmap: a day-numbered plan anchored at a
// start date with per-day completion. State is scoped to the browser client
// in ctx. Writes of one client are serialized within the process.
type Service struct {
	log   *slog.Logger
	store store
	locks *keylock.Map
}

// NewService creates a new roadmap service instance.
func NewService(logger *slog.Logger, store store) *Service {
	return &Service{
		log:   logger.With("service", "roadmap"),
		store: store,
		locks: keylock.New(),
	}
}

func clientKey(ctx context.Context) (string, error) {
	id, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return id + ":" + roadmapKey, nil
}

// lockClient holds the client's write lock until the returned func is called.
func (s *Service) lockClient(ctx context.Context) (func(), error) {
	id, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.locks.Lock(id), nil
}

// load returns the stored roadmap, or the default one when nothing is
// stored or the stored value cannot be decoded.
func (s *Service) load(ctx context.Context) (*domain.Roadmap, error) {
	key, err := clientKey(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Default(), nil
		}
		return nil, err
	}

	var rm domain.Roadmap
	if err := json.Unmarshal([]byte(raw), &rm); err != nil {
		s.log.WarnContext(ctx, "stored roadmap is corrupt, using default",
			slog.String("error", err.Error()),
		)
		return Default(), nil
	}
	if rm.Days == nil {
		rm.Days = []domain.RoadmapDay{}
	}
	if rm.Completed == nil {
		rm.Completed = map[int]bool{}
	}
	return &rm, nil
}

func (s *Service) save(ctx context.Context, rm *domain.Roadmap) error {
	key, err := clientKey(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(rm)
	if err != nil {
		return fmt.Errorf("encode roadmap: %w", err)
	}
	return s.store.Set(ctx, key, string(raw))
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
