package domain

import "time"

// RoadmapDay is one lesson of the learning roadmap.
type RoadmapDay struct {
	Day       int      `json:"day"`
	Topic     string   `json:"topic"`
	Goal      string   `json:"goal"`
	Tasks     []string `json:"tasks"`
	Resources []string `json:"resources"`
}

// Roadmap is the learning plan with its start date and completion flags.
type Roadmap struct {
	StartDate time.Time    `json:"startDate"`
	Days      []RoadmapDay `json:"days"`
	Completed map[int]bool `json:"completed"`
}

// DateForDay returns the calendar date of a 1-based roadmap day.
func (r *Roadmap) DateForDay(day int) time.Time {
	return r.StartDate.AddDate(0, 0, day-1)
}

// CompletedCount returns how many days are marked done.
func (r *Roadmap) CompletedCount() int {
	n := 0
	for _, done := range r.Completed {
		if done {
			n++
		}
	}
	return n
}
