package habit

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// ListRoutines returns the client's routines in creation order.
func (s *Service) ListRoutines(ctx context.Context) ([]domain.Routine, error) {
	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.ListRoutines: %w", err)
	}
	return routines, nil
}

// CreateRoutine appends a new routine. Empty time defaults to 08:00.
func (s *Service) CreateRoutine(ctx context.Context, input RoutineInput) (*domain.Routine, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.CreateRoutine: %w", err)
	}
	defer unlock()

	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.CreateRoutine: %w", err)
	}

	r := domain.Routine{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		TimeOfDay: input.TimeOfDay,
		Repeat:    normalizedRepeat(input.Repeat),
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if r.TimeOfDay == "" {
		r.TimeOfDay = defaultTimeOfDay
	}
	if input.IsActive != nil {
		r.IsActive = *input.IsActive
	}

	routines = append(routines, r)
	if err := s.save(ctx, routinesKey, routines); err != nil {
		return nil, fmt.Errorf("habit.CreateRoutine: %w", err)
	}

	s.log.InfoContext(ctx, "routine created", slog.String("routine_id", r.ID.String()))

	return &r, nil
}

// UpdateRoutine replaces the editable fields of routine id. ID and
// CreatedAt are preserved.
func (s *Service) UpdateRoutine(ctx context.Context, id uuid.UUID, input RoutineInput) (*domain.Routine, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.UpdateRoutine: %w", err)
	}
	defer unlock()

	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.UpdateRoutine: %w", err)
	}

	idx := indexOf(routines, id)
	if idx < 0 {
		return nil, fmt.Errorf("habit.UpdateRoutine: routine %s: %w", id, domain.ErrNotFound)
	}

	r := &routines[idx]
	r.Title = strings.TrimSpace(input.Title)
	if input.TimeOfDay != "" {
		r.TimeOfDay = input.TimeOfDay
	}
	r.Repeat = normalizedRepeat(input.Repeat)
	if input.IsActive != nil {
		r.IsActive = *input.IsActive
	}

	if err := s.save(ctx, routinesKey, routines); err != nil {
		return nil, fmt.Errorf("habit.UpdateRoutine: %w", err)
	}

	updated := *r
	return &updated, nil
}

// DeleteRoutine removes routine id. Completion checks are left as they are.
func (s *Service) DeleteRoutine(ctx context.Context, id uuid.UUID) error {
	unlock, err := s.lockClient(ctx)
	if err != nil {
		return fmt.Errorf("habit.DeleteRoutine: %w", err)
	}
	defer unlock()

	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return fmt.Errorf("habit.DeleteRoutine: %w", err)
	}

	idx := indexOf(routines, id)
	if idx < 0 {
		return fmt.Errorf("habit.DeleteRoutine: routine %s: %w", id, domain.ErrNotFound)
	}

	routines = slices.Delete(routines, idx, idx+1)
	if err := s.save(ctx, routinesKey, routines); err != nil {
		return fmt.Errorf("habit.DeleteRoutine: %w", err)
	}

	s.log.InfoContext(ctx, "routine deleted", slog.String("routine_id", id.String()))

	return nil
}

// ToggleActive flips the active flag of routine id.
func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.ToggleActive: %w", err)
	}
	defer unlock()

	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.ToggleActive: %w", err)
	}

	idx := indexOf(routines, id)
	if idx < 0 {
		return nil, fmt.Errorf("habit.ToggleActive: routine %s: %w", id, domain.ErrNotFound)
	}
	routines[idx].IsActive = !routines[idx].IsActive

	if err := s.save(ctx, routinesKey, routines); err != nil {
		return nil, fmt.Errorf("habit.ToggleActive: %w", err)
	}

	updated := routines[idx]
	return &updated, nil
}

func indexOf(routines []domain.Routine, id uuid.UUID) int {
	return slices.IndexFunc(routines, func(r domain.Routine) bool { return r.ID == id })
}
