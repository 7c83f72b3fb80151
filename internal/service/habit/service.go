package habit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
	"github.com/heartmarshall/kairon-web/pkg/keylock"
)

// store is the key-value persistence the tracker keeps its state in.
type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// translator resolves motivation messages.
type translator interface {
	T(locale domain.Locale, key string) string
	List(locale domain.Locale, key string) []string
}

const (
	routinesKey     = "routines"
	checksKeyPrefix = "checks_"
)

// Service implements the habit tracker: routines, per-day completion checks
// and the motivation line. State is scoped to the browser client in ctx.
// Writes of one client are serialized within the process.
type Service struct {
	log   *slog.Logger
	store store
	tr    translator
	locks *keylock.Map
	now   func() time.Time
	pick  func(n int) int
}

// NewService creates a new habit service instance.
func NewService(logger *slog.Logger, store store, tr translator) *Service {
	return &Service{
		log:   logger.With("service", "habit"),
		store: store,
		tr:    tr,
		locks: keylock.New(),
		now:   time.Now,
		pick:  rand.IntN,
	}
}

// CurrentDate returns the current UTC calendar date.
func (s *Service) CurrentDate() time.Time {
	return truncateDay(s.now())
}

func clientKey(ctx context.Context, name string) (string, error) {
	id, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return id + ":" + name, nil
}

// lockClient holds the client's write lock until the returned func is called.
func (s *Service) lockClient(ctx context.Context) (func(), error) {
	id, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.locks.Lock(id), nil
}

func checksKey(date time.Time) string {
	return checksKeyPrefix + date.Format(domain.DateLayout)
}

// load decodes the JSON value at name into dst. A missing key leaves dst
// untouched.
func (s *Service) load(ctx context.Context, name string, dst any) error {
	key, err := clientKey(ctx, name)
	if err != nil {
		return err
	}
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.WarnContext(ctx, "stored value is corrupt, using empty state",
			slog.String("key", name),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func (s *Service) save(ctx context.Context, name string, v any) error {
	key, err := clientKey(ctx, name)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.store.Set(ctx, key, string(raw))
}

func (s *Service) loadRoutines(ctx context.Context) ([]domain.Routine, error) {
	var routines []domain.Routine
	if err := s.load(ctx, routinesKey, &routines); err != nil {
		return nil, err
	}
	if routines == nil {
		routines = []domain.Routine{}
	}
	return routines, nil
}

func (s *Service) loadChecks(ctx context.Context, date time.Time) (domain.DailyChecks, error) {
	checks := domain.DailyChecks{}
	if err := s.load(ctx, checksKey(date), &checks); err != nil {
		return nil, err
	}
	if checks == nil {
		checks = domain.DailyChecks{}
	}
	return checks, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
