package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for storage keys and API params.
const DateLayout = "2006-01-02"

// Routine is a recurring habit tracked by the habit tracker.
type Routine struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	TimeOfDay string    `json:"timeOfDay"`
	Repeat    []Weekday `json:"repeat"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScheduledOn reports whether the routine is active and repeats on the given weekday.
func (r *Routine) ScheduledOn(day Weekday) bool {
	return r.IsActive && slices.Contains(r.Repeat, day)
}

// DailyChecks maps routine ID to its completion flag for one calendar day.
type DailyChecks map[uuid.UUID]bool

// Completed returns the number of routines marked done.
func (c DailyChecks) Completed() int {
	n := 0
	for _, done := range c {
		if done {
			n++
		}
	}
	return n
}
