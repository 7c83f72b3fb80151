package habit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// DailyChecks returns the completion flags recorded for date.
func (s *Service) DailyChecks(ctx context.Context, date time.Time) (domain.DailyChecks, error) {
	checks, err := s.loadChecks(ctx, truncateDay(date))
	if err != nil {
		return nil, fmt.Errorf("habit.DailyChecks: %w", err)
	}
	return checks, nil
}

// ToggleCompletion flips the done flag of routineID on date and returns the
// updated checks. The routine must exist.
func (s *Service) ToggleCompletion(ctx context.Context, date time.Time, routineID uuid.UUID) (domain.DailyChecks, error) {
	date = truncateDay(date)

	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.ToggleCompletion: %w", err)
	}
	defer unlock()

	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.ToggleCompletion: %w", err)
	}
	if indexOf(routines, routineID) < 0 {
		return nil, fmt.Errorf("habit.ToggleCompletion: routine %s: %w", routineID, domain.ErrNotFound)
	}

	checks, err := s.loadChecks(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("habit.ToggleCompletion: %w", err)
	}
	checks[routineID] = !checks[routineID]

	if err := s.save(ctx, checksKey(date), checks); err != nil {
		return nil, fmt.Errorf("habit.ToggleCompletion: %w", err)
	}
	return checks, nil
}
