package schedule

import (
	"testing"
	"time"

	"github.com/spec-kit/shift-planner/internal/domain"
)

var testWeek = WeekOf(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC))

func testStaff(uniqueID, deptID string, tier domain.ExperienceTier) domain.Staff {
	return domain.Staff{
		UniqueID:     uniqueID,
		EmployeeID:   "E-" + uniqueID,
		Name:         uniqueID,
		DepartmentID: deptID,
		Experience:   tier,
	}
}

func testCatalog(headcounts map[string]int) ([]domain.Department, map[string][]domain.ShiftDefinition) {
	depts := []domain.Department{
		{ID: "front", Name: "Front Desk", MaxStaff: 8, Position: 0},
		{ID: "restaurant", Name: "Restaurant", MaxStaff: 10, Position: 1},
	}
	shifts := make(map[string][]domain.ShiftDefinition)
	for _, dept := range depts {
		for i, s := range []struct {
			id, start, end string
		}{
			{"morning", "06:00", "14:00"},
			{"day", "08:00", "17:00"},
			{"evening", "14:00", "22:00"},
			{"night", "22:00", "06:00"},
		} {
			count := headcounts[dept.ID+"/"+s.id]
			shifts[dept.ID] = append(shifts[dept.ID], domain.ShiftDefinition{
				ID:                s.id,
				DepartmentID:      dept.ID,
				Name:              s.id,
				StartTime:         domain.TimeOfDay(s.start),
				EndTime:           domain.TimeOfDay(s.end),
				RequiredHeadcount: count,
				Position:          i,
			})
		}
	}
	return depts, shifts
}

func TestGenerate_EmptyRoster(t *testing.T) {
	depts, shifts := testCatalog(nil)

	_, _, err := Generate(GenerateInput{
		Week:         testWeek,
		Departments:  depts,
		Shifts:       shifts,
		RosterByDept: map[string][]domain.Staff{"front": {}, "restaurant": {}},
	})
	if err != ErrEmptyRoster {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}
}

func TestGenerate_ExpertWinsThenNextTier(t *testing.T) {
	depts, shifts := testCatalog(nil)
	roster := map[string][]domain.Staff{
		"front": {
			testStaff("a", "front", domain.ExperienceExpert),
			testStaff("b", "front", domain.ExperienceMiddle),
		},
	}

	ledger, _, err := Generate(GenerateInput{
		Week:         testWeek,
		Departments:  depts,
		Shifts:       shifts,
		RosterByDept: roster,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, date := range testWeek {
		morning := domain.Slot{Date: date, ShiftID: "morning", DepartmentID: "front", Index: 0}
		day := domain.Slot{Date: date, ShiftID: "day", DepartmentID: "front", Index: 0}
		evening := domain.Slot{Date: date, ShiftID: "evening", DepartmentID: "front", Index: 0}

		if id, _ := ledger.StaffFor(morning); id != "a" {
			t.Errorf("%s morning: expected expert a, got %q", date, id)
		}
		if id, _ := ledger.StaffFor(day); id != "b" {
			t.Errorf("%s day: expected b once a is used, got %q", date, id)
		}
		if _, ok := ledger.StaffFor(evening); ok {
			t.Errorf("%s evening: expected unfilled, pool exhausted for the day", date)
		}
	}
}

func TestGenerate_OneShiftPerDay(t *testing.T) {
	depts, shifts := testCatalog(nil)
	roster := map[string][]domain.Staff{
		"front": {
			testStaff("a", "front", domain.ExperienceExpert),
			testStaff("b", "front", domain.ExperienceBeginner),
		},
		"restaurant": {
			testStaff("c", "restaurant", domain.ExperienceMiddle),
		},
	}

	ledger, _, err := Generate(GenerateInput{
		Week:         testWeek,
		Departments:  depts,
		Shifts:       shifts,
		RosterByDept: roster,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	perDay := make(map[domain.Date]map[string]int)
	for slot, id := range ledger {
		if perDay[slot.Date] == nil {
			perDay[slot.Date] = make(map[string]int)
		}
		perDay[slot.Date][id]++
	}
	for date, counts := range perDay {
		for id, n := range counts {
			if n > 1 {
				t.Errorf("%s: staff %s holds %d slots on one date", date, id, n)
			}
		}
	}
}

func TestGenerate_StaffStayInTheirDepartment(t *testing.T) {
	depts, shifts := testCatalog(nil)
	byID := map[string]string{"a": "front", "c": "restaurant"}
	roster := map[string][]domain.Staff{
		"front":      {testStaff("a", "front", domain.ExperienceExpert)},
		"restaurant": {testStaff("c", "restaurant", domain.ExperienceMiddle)},
	}

	ledger, _, err := Generate(GenerateInput{
		Week:         testWeek,
		Departments:  depts,
		Shifts:       shifts,
		RosterByDept: roster,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for slot, id := range ledger {
		if byID[id] != slot.DepartmentID {
			t.Errorf("staff %s from %s assigned into %s", id, byID[id], slot.DepartmentID)
		}
	}
}

func TestGenerate_TieBrokenByRegistrationOrder(t *testing.T) {
	depts, shifts := testCatalog(nil)
	roster := map[string][]domain.Staff{
		"front": {
			testStaff("first", "front", domain.ExperienceMiddle),
			testStaff("second", "front", domain.ExperienceMiddle),
		},
	}
	in := GenerateInput{Week: testWeek, Departments: depts, Shifts: shifts, RosterByDept: roster}

	for run := 0; run < 5; run++ {
		ledger, _, err := Generate(in)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		slot := domain.Slot{Date: testWeek[0], ShiftID: "morning", DepartmentID: "front", Index: 0}
		if id, _ := ledger.StaffFor(slot); id != "first" {
			t.Fatalf("run %d: equal tiers must resolve to the earliest registration, got %q", run, id)
		}
	}
}

func TestGenerate_UnderStaffedHeadcountIsReportedNotFailed(t *testing.T) {
	depts, shifts := testCatalog(map[string]int{"front/evening": 3})
	roster := map[string][]domain.Staff{
		"front": {
			testStaff("a", "front", domain.ExperienceExpert),
			testStaff("b", "front", domain.ExperienceMiddle),
		},
	}

	// Only the evening shift exists, so both staff are free for it.
	shifts["front"] = shifts["front"][2:3]
	shifts["restaurant"] = nil

	ledger, report, err := Generate(GenerateInput{
		Week:         testWeek,
		Departments:  depts,
		Shifts:       shifts,
		RosterByDept: roster,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	date := testWeek[0]
	filled := 0
	for index := 0; index < 3; index++ {
		slot := domain.Slot{Date: date, ShiftID: "evening", DepartmentID: "front", Index: index}
		if _, ok := ledger.StaffFor(slot); ok {
			filled++
		}
	}
	if filled != 2 {
		t.Errorf("expected 2 of 3 evening slots filled, got %d", filled)
	}
	if len(report.Unfilled) != 7 {
		t.Errorf("expected one unfilled slot per day, got %d", len(report.Unfilled))
	}
	if report.TotalSlots != 21 || report.Filled != 14 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestGenerate_ProducesFreshLedger(t *testing.T) {
	depts, shifts := testCatalog(nil)
	roster := map[string][]domain.Staff{
		"front": {testStaff("a", "front", domain.ExperienceExpert)},
	}
	in := GenerateInput{Week: testWeek, Departments: depts, Shifts: shifts, RosterByDept: roster}

	first, _, err := Generate(in)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	manual := domain.Slot{Date: testWeek[3], ShiftID: "night", DepartmentID: "front", Index: 0}
	first.Assign(manual, "someone-else")

	second, _, err := Generate(in)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if id, ok := second.StaffFor(manual); ok && id == "someone-else" {
		t.Error("regeneration must not carry over prior manual entries")
	}
}
