package roadmap

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Cell is one day of the month grid. Lesson is nil on days without a plan
// entry.
type Cell struct {
	Date      string             `json:"date"`
	Lesson    *domain.RoadmapDay `json:"lesson,omitempty"`
	Completed bool               `json:"completed"`
}

// Calendar is a Sunday-first month grid. Leading nil cells pad the weekday
// of the 1st.
type Calendar struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Cells []*Cell `json:"cells"`
}

// Calendar lays out month (1-12) of year with the lessons falling on each
// date.
func (s *Service) Calendar(ctx context.Context, year, month int) (*Calendar, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, domain.NewValidationError("month", MsgMonthInvalid)
	}

	rm, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roadmap.Calendar: %w", err)
	}
	return BuildCalendar(rm, year, time.Month(month)), nil
}

// BuildCalendar lays out one month of rm.
func BuildCalendar(rm *domain.Roadmap, year int, month time.Month) *Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cal := &Calendar{
		Year:  year,
		Month: int(month),
		Cells: make([]*Cell, lead, lead+daysInMonth),
	}
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		cell := &Cell{Date: date.Format(domain.DateLayout)}
		if lesson := lessonOn(rm, date); lesson != nil {
			cell.Lesson = lesson
			cell.Completed = rm.Completed[lesson.Day]
		}
		cal.Cells = append(cal.Cells, cell)
	}
	return cal
}
