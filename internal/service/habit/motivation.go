package habit

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// MotivationKind classifies the day's progress.
type MotivationKind string

const (
	MotivationSuccess  MotivationKind = "success"
	MotivationProgress MotivationKind = "progress"
	MotivationNone     MotivationKind = "none"
)

// Motivation is the line shown above today's tasks.
type Motivation struct {
	Kind      MotivationKind `json:"kind"`
	Message   string         `json:"message"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
}

// Motivation picks the message for date over the routines on that day's
// plan. All of them done gives a random success quote, some done the
// keep-going line, otherwise the tomorrow line.
func (s *Service) Motivation(ctx context.Context, locale domain.Locale, date time.Time) (*Motivation, error) {
	date = truncateDay(date)

	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.Motivation: %w", err)
	}
	checks, err := s.loadChecks(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("habit.Motivation: %w", err)
	}

	day := domain.WeekdayOf(date.Weekday())
	m := &Motivation{}
	for _, r := range routines {
		if !r.ScheduledOn(day) {
			continue
		}
		m.Total++
		if checks[r.ID] {
			m.Completed++
		}
	}

	switch {
	case m.Total > 0 && m.Completed == m.Total:
		m.Kind = MotivationSuccess
		quotes := s.tr.List(locale, "habit.motivation.success")
		if len(quotes) > 0 {
			m.Message = quotes[s.pick(len(quotes))]
		}
	case m.Completed > 0:
		m.Kind = MotivationProgress
		m.Message = s.tr.T(locale, "habit.motivation.progress")
	default:
		m.Kind = MotivationNone
		m.Message = s.tr.T(locale, "habit.motivation.none")
	}

	return m, nil
}
