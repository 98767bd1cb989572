package domain

import "time"

// ExperienceTier classifies staff skill. Tiers are ordered:
// beginner < middle < expert.
type ExperienceTier string

const (
	ExperienceBeginner ExperienceTier = "beginner"
	ExperienceMiddle   ExperienceTier = "middle"
	ExperienceExpert   ExperienceTier = "expert"
)

// Rank returns the ordering value of the tier (higher is more experienced).
// Unknown tiers rank below beginner.
func (e ExperienceTier) Rank() int {
	switch e {
	case ExperienceExpert:
		return 3
	case ExperienceMiddle:
		return 2
	case ExperienceBeginner:
		return 1
	}
	return 0
}

// Valid reports whether the tier is one of the known values.
func (e ExperienceTier) Valid() bool {
	return e.Rank() > 0
}

// EmploymentType enumerates employment categories.
type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "full_time"
	EmploymentContract  EmploymentType = "contract"
	EmploymentPartTime  EmploymentType = "part_time"
	EmploymentTemporary EmploymentType = "temporary"
)

// Valid reports whether the employment type is known.
func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentContract, EmploymentPartTime, EmploymentTemporary:
		return true
	}
	return false
}

// Personality is a fixed-set tag used for advisory team composition hints.
type Personality string

const (
	PersonalitySocial      Personality = "social"
	PersonalityIntrovert   Personality = "introvert"
	PersonalityLeader      Personality = "leader"
	PersonalitySupporter   Personality = "supporter"
	PersonalityIndependent Personality = "independent"
	PersonalityCooperative Personality = "cooperative"
)

// Valid reports whether the personality tag is known.
func (p Personality) Valid() bool {
	switch p {
	case PersonalitySocial, PersonalityIntrovert, PersonalityLeader,
		PersonalitySupporter, PersonalityIndependent, PersonalityCooperative:
		return true
	}
	return false
}

// Compatibility grades how well two staff members work together.
type Compatibility string

const (
	CompatibilityGood Compatibility = "good"
	CompatibilityBad  Compatibility = "bad"
)

// Staff models one schedulable employee. UniqueID is the process-unique
// identity every lookup is keyed by; EmployeeID is the user-supplied
// business id, unique across the whole roster.
type Staff struct {
	UniqueID       string
	EmployeeID     string
	Name           string
	DepartmentID   string
	Employment     EmploymentType
	Experience     ExperienceTier
	Personality    Personality
	WeeklyMaxHours int
	DailyMaxHours  int

	// AvailableWeekdays holds the weekdays the member can work
	// (time.Sunday..time.Saturday). Empty means every weekday.
	AvailableWeekdays []time.Weekday

	// UnavailableDates lists specific dates the member cannot work.
	UnavailableDates []Date

	// ShiftPreferences flags, per shift id, whether the member wants that
	// shift type. Missing entries count as preferred. Advisory only.
	ShiftPreferences map[string]bool

	// CompatibilityMap grades relations to other staff by UniqueID.
	CompatibilityMap map[string]Compatibility

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableOn reports whether the member can work the given weekday.
func (s *Staff) AvailableOn(day time.Weekday) bool {
	if len(s.AvailableWeekdays) == 0 {
		return true
	}
	for _, d := range s.AvailableWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// UnavailableOn reports whether the given date is explicitly blocked.
func (s *Staff) UnavailableOn(date Date) bool {
	for _, d := range s.UnavailableDates {
		if d == date {
			return true
		}
	}
	return false
}

// Prefers reports the member's preference for a shift id. Advisory only.
func (s *Staff) Prefers(shiftID string) bool {
	if s.ShiftPreferences == nil {
		return true
	}
	pref, ok := s.ShiftPreferences[shiftID]
	if !ok {
		return true
	}
	return pref
}
