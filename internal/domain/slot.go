package domain

import (
	"fmt"
	"time"
)

// Date is a calendar date in "2006-01-02" form. Using a value type keeps
// slot identities comparable and free of time zone baggage.
type Date string

// DateOf truncates a time to its calendar date in the time's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(time.DateOnly))
}

// ParseDate validates a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	t, _ := time.Parse(time.DateOnly, string(d))
	return t
}

// Weekday returns the weekday of the date.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Slot is the atomic unit of assignment: one opening of one shift in one
// department on one date. Slots are derived from the week grid and the
// shift catalog, never stored as such; only filled slots appear in the
// ledger.
type Slot struct {
	Date         Date
	ShiftID      string
	DepartmentID string
	Index        int
}

// String renders the slot identity for logs and error details.
func (s Slot) String() string {
	return fmt.Sprintf("%s/%s/%s/%d", s.Date, s.DepartmentID, s.ShiftID, s.Index)
}
