package schedule

import (
	"errors"
	"sort"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// ErrEmptyRoster is returned when generation is attempted with no staff
// registered in any department.
var ErrEmptyRoster = errors.New("no staff registered in any department")

// GenerateInput is a snapshot of everything the allocation pass reads.
type GenerateInput struct {
	// Week is the 7-date window to fill, as produced by WeekOf.
	Week [7]domain.Date
	// Departments in catalog order.
	Departments []domain.Department
	// Shifts per department id, in catalog order.
	Shifts map[string][]domain.ShiftDefinition
	// RosterByDept holds each department's staff in registration order.
	RosterByDept map[string][]domain.Staff
}

// Report summarizes a generation pass. Under-staffing is a reportable
// outcome, never an error.
type Report struct {
	TotalSlots int
	Filled     int
	Unfilled   []domain.Slot
}

// Generate runs the deterministic greedy allocation: dates in
// chronological order, shift definitions in catalog order, departments in
// catalog order, slot indexes ascending. Each slot takes the highest
// experience tier still free that day, ties broken by registration order.
// A fresh ledger is always produced; prior assignments are never consulted.
func Generate(in GenerateInput) (Ledger, Report, error) {
	total := 0
	for _, roster := range in.RosterByDept {
		total += len(roster)
	}
	if total == 0 {
		return nil, Report{}, ErrEmptyRoster
	}

	ledger := NewLedger()
	report := Report{}

	for _, date := range in.Week {
		for _, shiftID := range shiftOrder(in.Departments, in.Shifts) {
			for _, dept := range in.Departments {
				shift, ok := findShift(in.Shifts[dept.ID], shiftID)
				if !ok {
					continue
				}
				for index := 0; index < shift.Headcount(); index++ {
					slot := domain.Slot{
						Date:         date,
						ShiftID:      shift.ID,
						DepartmentID: dept.ID,
						Index:        index,
					}
					report.TotalSlots++

					pool := freePool(in.RosterByDept[dept.ID], date, ledger)
					if len(pool) == 0 {
						report.Unfilled = append(report.Unfilled, slot)
						continue
					}
					sort.SliceStable(pool, func(i, j int) bool {
						return pool[i].Experience.Rank() > pool[j].Experience.Rank()
					})
					ledger.Assign(slot, pool[0].UniqueID)
					report.Filled++
				}
			}
		}
	}

	return ledger, report, nil
}

// shiftOrder returns the distinct shift ids in catalog order: departments
// in order, each department's shifts in order, first appearance wins.
func shiftOrder(departments []domain.Department, shifts map[string][]domain.ShiftDefinition) []string {
	seen := make(map[string]bool)
	var order []string
	for _, dept := range departments {
		for _, shift := range shifts[dept.ID] {
			if !seen[shift.ID] {
				seen[shift.ID] = true
				order = append(order, shift.ID)
			}
		}
	}
	return order
}

func findShift(defs []domain.ShiftDefinition, shiftID string) (domain.ShiftDefinition, bool) {
	for _, def := range defs {
		if def.ID == shiftID {
			return def, true
		}
	}
	return domain.ShiftDefinition{}, false
}

// freePool returns the department staff not yet holding an assignment on
// the date, preserving registration order.
func freePool(roster []domain.Staff, date domain.Date, ledger Ledger) []domain.Staff {
	pool := make([]domain.Staff, 0, len(roster))
	for _, staff := range roster {
		if !ledger.AssignedOn(date, staff.UniqueID, nil) {
			pool = append(pool, staff)
		}
	}
	return pool
}
