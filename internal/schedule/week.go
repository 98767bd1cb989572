// Package schedule holds the pure shift-assignment core: the week grid
// builder, the assignment ledger, the conflict validator and the greedy
// allocation engine. Nothing here touches I/O; the service layer owns
// persistence and serialization.
package schedule

import (
	"time"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// WeekOf returns the Sunday-to-Saturday 7-date window containing ref.
// Deterministic and idempotent; ref is never mutated.
func WeekOf(ref time.Time) [7]domain.Date {
	start := ref.AddDate(0, 0, -int(ref.Weekday()))
	var week [7]domain.Date
	for i := range week {
		week[i] = domain.DateOf(start.AddDate(0, 0, i))
	}
	return week
}

// WeekContains reports whether date falls inside the given week window.
func WeekContains(week [7]domain.Date, date domain.Date) bool {
	for _, d := range week {
		if d == date {
			return true
		}
	}
	return false
}
