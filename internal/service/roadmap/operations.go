package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Message keys for field errors.
const (
	MsgNotArray         = "roadmap.validation.notArray"
	MsgInvalidJSON      = "roadmap.validation.invalidJSON"
	MsgDayInvalid       = "roadmap.validation.dayInvalid"
	MsgStartDateInvalid = "roadmap.validation.startDateInvalid"
	MsgMonthInvalid     = "roadmap.validation.monthInvalid"
)

// Get returns the client's roadmap.
func (s *Service) Get(ctx context.Context) (*domain.Roadmap, error) {
	rm, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.Get: %w", err)
	}
	return rm, nil
}

// SetStartDate moves the roadmap to start on date (YYYY-MM-DD).
func (s *Service) SetStartDate(ctx context.Context, date string) (*domain.Roadmap, error) {
	start, err := time.Parse(domain.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, domain.NewValidationError("startDate", MsgStartDateInvalid)
	}

	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.SetStartDate: %w", err)
	}
	defer unlock()

	rm, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.SetStartDate: %w", err)
	}
	rm.StartDate = start

	if err := s.save(ctx, rm); err != nil {
		return nil, fmt.Errorf("roadmap.SetStartDate: %w", err)
	}
	return rm, nil
}

// ImportJSON replaces the plan with raw, which must be a JSON array of days.
// Completion flags are kept.
func (s *Service) ImportJSON(ctx context.Context, raw []byte) (*domain.Roadmap, error) {
	var shape any
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, invalidJSON(err)
	}
	if _, ok := shape.([]any); !ok {
		return nil, domain.NewValidationError("json", MsgNotArray)
	}

	var days []domain.RoadmapDay
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, invalidJSON(err)
	}

	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.ImportJSON: %w", err)
	}
	defer unlock()

	rm, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.ImportJSON: %w", err)
	}
	rm.Days = days

	if err := s.save(ctx, rm); err != nil {
		return nil, fmt.Errorf("roadmap.ImportJSON: %w", err)
	}

	s.log.InfoContext(ctx, "roadmap imported", slog.Int("days", len(days)))

	return rm, nil
}

func invalidJSON(err error) error {
	return &domain.ValidationError{Errors: []domain.FieldError{{
		Field:   "json",
		Message: MsgInvalidJSON,
		Detail:  err.Error(),
	}}}
}

// Reset drops the stored roadmap so the default plan is served again.
func (s *Service) Reset(ctx context.Context) (*domain.Roadmap, error) {
	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.Reset: %w", err)
	}
	defer unlock()

	key, err := clientKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.Reset: %w", err)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("roadmap.Reset: %w", err)
	}
	return Default(), nil
}

// ToggleDay flips the completion flag of a day present in the plan.
func (s *Service) ToggleDay(ctx context.Context, day int) (*domain.Roadmap, error) {
	unlock, err := s.lockClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.ToggleDay: %w", err)
	}
	defer unlock()

	rm, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.ToggleDay: %w", err)
	}
	if findDay(rm, day) == nil {
		return nil, domain.NewValidationError("day", MsgDayInvalid)
	}

	rm.Completed[day] = !rm.Completed[day]

	if err := s.save(ctx, rm); err != nil {
		return nil, fmt.Errorf("roadmap.ToggleDay: %w", err)
	}
	return rm, nil
}

// Progress returns the rounded percentage of plan days marked done.
func (s *Service) Progress(ctx context.Context) (int, error) {
	rm, err := s.load(ctx)
	if err != nil {
		return 0, fmt.Errorf("roadmap.Progress: %w", err)
	}
	return Progress(rm), nil
}

// Progress computes the rounded completion percentage of rm. Flags for days
// no longer in the plan are ignored; an empty plan is 0%.
func Progress(rm *domain.Roadmap) int {
	if len(rm.Days) == 0 {
		return 0
	}
	done := 0
	for _, d := range rm.Days {
		if rm.Completed[d.Day] {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(rm.Days)) * 100))
}

// DateForDay returns the calendar date of a 1-based day.
func (s *Service) DateForDay(ctx context.Context, day int) (time.Time, error) {
	rm, err := s.load(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("roadmap.DateForDay: %w", err)
	}
	return rm.DateForDay(day), nil
}

// LessonForDate returns the plan day falling on date.
func (s *Service) LessonForDate(ctx context.Context, date time.Time) (*domain.RoadmapDay, error) {
	rm, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.LessonForDate: %w", err)
	}
	if lesson := lessonOn(rm, truncateDay(date)); lesson != nil {
		return lesson, nil
	}
	return nil, fmt.Errorf("roadmap.LessonForDate: %s: %w", date.Format(domain.DateLayout), domain.ErrNotFound)
}

func findDay(rm *domain.Roadmap, day int) *domain.RoadmapDay {
	idx := slices.IndexFunc(rm.Days, func(d domain.RoadmapDay) bool { return d.Day == day })
	if idx < 0 {
		return nil
	}
	return &rm.Days[idx]
}

func lessonOn(rm *domain.Roadmap, date time.Time) *domain.RoadmapDay {
	for i := range rm.Days {
		if truncateDay(rm.DateForDay(rm.Days[i].Day)).Equal(date) {
			return &rm.Days[i]
		}
	}
	return nil
}
