package habit

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Task is a routine scheduled on a day with its completion flag.
type Task struct {
	Routine domain.Routine `json:"routine"`
	Done    bool           `json:"done"`
}

// DayPlan lists the tasks of one calendar day.
type DayPlan struct {
	Date    string         `json:"date"`
	Weekday domain.Weekday `json:"weekday"`
	Tasks   []Task         `json:"tasks"`
}

// Today returns the active routines scheduled on date, ordered by time of day.
func (s *Service) Today(ctx context.Context, date time.Time) (*DayPlan, error) {
	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.Today: %w", err)
	}
	plan, err := s.plan(ctx, sortedByTime(routines), truncateDay(date))
	if err != nil {
		return nil, fmt.Errorf("habit.Today: %w", err)
	}
	return plan, nil
}

// Week returns seven day plans, Monday to Sunday, for the week containing
// anchor.
func (s *Service) Week(ctx context.Context, anchor time.Time) ([]DayPlan, error) {
	routines, err := s.loadRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("habit.Week: %w", err)
	}
	routines = sortedByTime(routines)

	start := WeekStart(anchor)
	week := make([]DayPlan, 0, 7)
	for i := range 7 {
		plan, err := s.plan(ctx, routines, start.AddDate(0, 0, i))
		if err != nil {
			return nil, fmt.Errorf("habit.Week: %w", err)
		}
		week = append(week, *plan)
	}
	return week, nil
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	t = truncateDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func (s *Service) plan(ctx context.Context, routines []domain.Routine, date time.Time) (*DayPlan, error) {
	checks, err := s.loadChecks(ctx, date)
	if err != nil {
		return nil, err
	}

	day := domain.WeekdayOf(date.Weekday())
	plan := &DayPlan{
		Date:    date.Format(domain.DateLayout),
		Weekday: day,
		Tasks:   []Task{},
	}
	for _, r := range routines {
		if r.ScheduledOn(day) {
			plan.Tasks = append(plan.Tasks, Task{Routine: r, Done: checks[r.ID]})
		}
	}
	return plan, nil
}

func sortedByTime(routines []domain.Routine) []domain.Routine {
	out := slices.Clone(routines)
	slices.SortStableFunc(out, func(a, b domain.Routine) int {
		return cmp.Compare(a.TimeOfDay, b.TimeOfDay)
	})
	return out
}
