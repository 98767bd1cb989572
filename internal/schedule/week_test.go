package schedule

import (
	"testing"
	"time"

	"github.com/spec-kit/shift-planner/internal/domain"
)

func TestWeekOf_StartsOnSunday(t *testing.T) {
	// 2024-01-17 is a Wednesday.
	ref := time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC)

	week := WeekOf(ref)

	if week[0] != domain.Date("2024-01-14") {
		t.Errorf("expected week to start on Sunday 2024-01-14, got %s", week[0])
	}
	if week[6] != domain.Date("2024-01-20") {
		t.Errorf("expected week to end on Saturday 2024-01-20, got %s", week[6])
	}
	for i, d := range week {
		if got := d.Weekday(); got != time.Weekday(i) {
			t.Errorf("day %d: expected weekday %s, got %s", i, time.Weekday(i), got)
		}
	}
}

func TestWeekOf_SameWeekForEveryReferenceDay(t *testing.T) {
	sunday := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	base := WeekOf(sunday)

	for offset := 0; offset < 7; offset++ {
		got := WeekOf(sunday.AddDate(0, 0, offset))
		if got != base {
			t.Errorf("reference day +%d produced a different window: %v vs %v", offset, got, base)
		}
	}
}

func TestWeekOf_Idempotent(t *testing.T) {
	ref := time.Date(2025, 12, 31, 8, 0, 0, 0, time.UTC)

	first := WeekOf(ref)
	second := WeekOf(ref)

	if first != second {
		t.Errorf("repeated calls disagree: %v vs %v", first, second)
	}
}

func TestWeekOf_DoesNotMutateReference(t *testing.T) {
	ref := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	before := ref

	WeekOf(ref)

	if !ref.Equal(before) {
		t.Error("reference date was mutated")
	}
}

func TestWeekContains(t *testing.T) {
	week := WeekOf(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC))

	if !WeekContains(week, domain.Date("2024-01-16")) {
		t.Error("expected 2024-01-16 inside the window")
	}
	if WeekContains(week, domain.Date("2024-01-21")) {
		t.Error("2024-01-21 is the following Sunday, should be outside")
	}
}
