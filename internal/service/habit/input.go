package habit

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Message keys for field errors.
const (
	MsgTitleRequired = "habit.validation.titleRequired"
	MsgTimeInvalid   = "habit.validation.timeInvalid"
	MsgRepeatInvalid = "habit.validation.repeatInvalid"
	MsgDateInvalid   = "habit.validation.dateInvalid"
	MsgIDInvalid     = "habit.validation.idInvalid"
)

const (
	defaultTimeOfDay = "08:00"
	timeOfDayLayout  = "15:04"
	maxTitleLen      = 200
)

// RoutineInput is the routine editor form. A nil Repeat means every day;
// a nil IsActive keeps the current value (true for new routines).
type RoutineInput struct {
	Title     string           `json:"title"`
	TimeOfDay string           `json:"timeOfDay"`
	Repeat    []domain.Weekday `json:"repeat"`
	IsActive  *bool            `json:"isActive"`
}

// Validate checks the form and collects all field errors.
func (i RoutineInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" || len([]rune(title)) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: MsgTitleRequired})
	}

	if i.TimeOfDay != "" && !validTimeOfDay(i.TimeOfDay) {
		errs = append(errs, domain.FieldError{Field: "timeOfDay", Message: MsgTimeInvalid})
	}

	for _, d := range i.Repeat {
		if !d.IsValid() {
			errs = append(errs, domain.FieldError{Field: "repeat", Message: MsgRepeatInvalid})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalizedRepeat dedupes days and orders them Monday first.
func normalizedRepeat(repeat []domain.Weekday) []domain.Weekday {
	if repeat == nil {
		return slices.Clone(domain.Weekdays)
	}
	out := make([]domain.Weekday, 0, len(repeat))
	for _, d := range domain.Weekdays {
		if slices.Contains(repeat, d) {
			out = append(out, d)
		}
	}
	return out
}

func validTimeOfDay(s string) bool {
	if len(s) != len(timeOfDayLayout) {
		return false
	}
	_, err := time.Parse(timeOfDayLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD query value. An empty value yields
// fallback.
func ParseDate(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", MsgDateInvalid)
	}
	return t, nil
}

// ParseRoutineID parses a routine id path value.
func ParseRoutineID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", MsgIDInvalid)
	}
	return id, nil
}
