package schedule

import (
	"fmt"
	"time"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// ShiftLookup resolves a (department, shift) pair to its definition.
type ShiftLookup func(departmentID, shiftID string) (domain.ShiftDefinition, bool)

// Violation identifies one failed or advisory conflict rule.
type Violation struct {
	Code    string
	Message string
}

// Decision is the validator's verdict for a proposed (slot, staff) pairing.
// Violations block the pairing; Warnings are advisory and never block.
type Decision struct {
	Allowed    bool
	Violations []Violation
	Warnings   []Violation
}

func (d *Decision) reject(code, message string) {
	d.Allowed = false
	d.Violations = append(d.Violations, Violation{Code: code, Message: message})
}

func (d *Decision) warn(code, message string) {
	d.Warnings = append(d.Warnings, Violation{Code: code, Message: message})
}

// CanAssign evaluates whether staff may take the given slot against the
// current ledger. Rules in order: department membership, the one-shift-
// per-day rule, hour budgets and declared unavailability. Preference and
// compatibility mismatches are surfaced as warnings only. The validator
// has no side effects.
func CanAssign(staff *domain.Staff, slot domain.Slot, ledger Ledger, shifts ShiftLookup) Decision {
	decision := Decision{Allowed: true}

	if staff.DepartmentID != slot.DepartmentID {
		decision.reject("WRONG_DEPARTMENT",
			fmt.Sprintf("%s belongs to department %s, not %s", staff.Name, staff.DepartmentID, slot.DepartmentID))
	}

	if ledger.AssignedOn(slot.Date, staff.UniqueID, &slot) {
		decision.reject("ALREADY_ASSIGNED_TODAY",
			fmt.Sprintf("%s already holds a shift on %s", staff.Name, slot.Date))
	}

	shift, ok := shifts(slot.DepartmentID, slot.ShiftID)
	if !ok {
		decision.reject("UNKNOWN_SHIFT",
			fmt.Sprintf("shift %s is not defined for department %s", slot.ShiftID, slot.DepartmentID))
		return decision
	}

	if staff.DailyMaxHours > 0 && shift.Duration() > time.Duration(staff.DailyMaxHours)*time.Hour {
		decision.reject("DAILY_HOURS_EXCEEDED",
			fmt.Sprintf("shift runs %s but %s may work at most %dh per day", shift.Duration(), staff.Name, staff.DailyMaxHours))
	}

	if staff.WeeklyMaxHours > 0 {
		load := weeklyLoad(staff.UniqueID, slot, ledger, shifts)
		if load+shift.Duration() > time.Duration(staff.WeeklyMaxHours)*time.Hour {
			decision.reject("WEEKLY_HOURS_EXCEEDED",
				fmt.Sprintf("accepting this shift would push %s past %dh for the week", staff.Name, staff.WeeklyMaxHours))
		}
	}

	if !staff.AvailableOn(slot.Date.Weekday()) {
		decision.reject("WEEKDAY_UNAVAILABLE",
			fmt.Sprintf("%s does not work on %s", staff.Name, slot.Date.Weekday()))
	}

	if staff.UnavailableOn(slot.Date) {
		decision.reject("DATE_UNAVAILABLE",
			fmt.Sprintf("%s is unavailable on %s", staff.Name, slot.Date))
	}

	if !staff.Prefers(slot.ShiftID) {
		decision.warn("SHIFT_NOT_PREFERRED",
			fmt.Sprintf("%s prefers not to work %s shifts", staff.Name, slot.ShiftID))
	}

	for _, other := range coworkers(staff.UniqueID, slot, ledger) {
		if staff.CompatibilityMap[other] == domain.CompatibilityBad {
			decision.warn("POOR_COMPATIBILITY",
				fmt.Sprintf("%s is marked incompatible with a coworker on this shift", staff.Name))
			break
		}
	}

	return decision
}

// weeklyLoad sums the durations of the slots staffID already holds within
// the week containing slot.Date, excluding slot itself.
func weeklyLoad(staffID string, slot domain.Slot, ledger Ledger, shifts ShiftLookup) time.Duration {
	week := WeekOf(slot.Date.Time())
	var total time.Duration
	for held, id := range ledger {
		if id != staffID || held == slot || !WeekContains(week, held.Date) {
			continue
		}
		if def, ok := shifts(held.DepartmentID, held.ShiftID); ok {
			total += def.Duration()
		}
	}
	return total
}

// coworkers collects the staff holding sibling slots of the same date,
// shift and department.
func coworkers(staffID string, slot domain.Slot, ledger Ledger) []string {
	var out []string
	for held, id := range ledger {
		if id == staffID {
			continue
		}
		if held.Date == slot.Date && held.ShiftID == slot.ShiftID && held.DepartmentID == slot.DepartmentID {
			out = append(out, id)
		}
	}
	return out
}
