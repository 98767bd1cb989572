package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time "HH:MM" within a day.
type TimeOfDay string

// Parse returns the hour and minute components.
func (t TimeOfDay) Parse() (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", t, err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// Valid reports whether the value parses as HH:MM.
func (t TimeOfDay) Valid() bool {
	_, _, err := t.Parse()
	return err == nil
}

// ShiftDefinition describes one recurring time window within a department.
// Two departments may carry differently named or timed shifts under the
// same shift id.
type ShiftDefinition struct {
	ID           string
	DepartmentID string
	Name         string
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	// RequiredHeadcount is the staffing target per occurrence; at least 1.
	RequiredHeadcount int
	Position          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Headcount returns the staffing target, defaulting to 1 when unset.
func (s ShiftDefinition) Headcount() int {
	if s.RequiredHeadcount < 1 {
		return 1
	}
	return s.RequiredHeadcount
}

// Duration returns the shift length. Windows crossing midnight
// (e.g. 22:00-06:00) wrap into the next day.
func (s ShiftDefinition) Duration() time.Duration {
	sh, sm, err := s.StartTime.Parse()
	if err != nil {
		return 0
	}
	eh, em, err := s.EndTime.Parse()
	if err != nil {
		return 0
	}
	start := time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute
	end := time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute
	if end <= start {
		end += 24 * time.Hour
	}
	return end - start
}

// Window renders the time window as "HH:MM-HH:MM".
func (s ShiftDefinition) Window() string {
	return string(s.StartTime) + "-" + string(s.EndTime)
}
