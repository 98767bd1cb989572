package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/events"
	"github.com/spec-kit/shift-planner/internal/observability"
	"github.com/spec-kit/shift-planner/internal/schedule"
)

var plannerRef = time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)
var plannerWeek = schedule.WeekOf(plannerRef)

func plannerStaff(uniqueID, deptID string, tier domain.ExperienceTier) domain.Staff {
	return domain.Staff{
		UniqueID:     uniqueID,
		EmployeeID:   "E-" + uniqueID,
		Name:         uniqueID,
		DepartmentID: deptID,
		Employment:   domain.EmploymentFullTime,
		Experience:   tier,
	}
}

func newPlannerFixture(members ...domain.Staff) (*PlannerService, *mockAssignmentRepo, *mockStaffRepo) {
	staffRepo := &mockStaffRepo{members: members}
	assignmentRepo := newMockAssignmentRepo()
	svc := NewPlannerService(PlannerDependencies{
		StaffRepo:      staffRepo,
		DepartmentRepo: testDepartments(),
		ShiftRepo:      testShifts(),
		AssignmentRepo: assignmentRepo,
		Dispatcher:     events.NewInMemoryDispatcher(),
		Metrics:        observability.NewMetrics(),
		Logger:         zap.NewNop(),
	})
	return svc, assignmentRepo, staffRepo
}

func TestPlannerGenerate(t *testing.T) {
	svc, assignmentRepo, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
		plannerStaff("b", "front", domain.ExperienceMiddle),
	)

	result, err := svc.Generate(context.Background(), plannerRef)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// 2 departments x 4 shifts x 7 days, headcount 1 each.
	if result.TotalSlots != 56 {
		t.Errorf("expected 56 slots, got %d", result.TotalSlots)
	}
	if result.Filled != 14 {
		t.Errorf("expected 14 filled slots, got %d", result.Filled)
	}

	morning := domain.Slot{Date: plannerWeek[0], ShiftID: "morning", DepartmentID: "front", Index: 0}
	if assignmentRepo.entries[morning] != "a" {
		t.Errorf("expected expert a on the first morning, got %q", assignmentRepo.entries[morning])
	}
}

func TestPlannerGenerate_EmptyRoster(t *testing.T) {
	svc, _, _ := newPlannerFixture()

	_, err := svc.Generate(context.Background(), plannerRef)
	if code := errCode(t, err); code != "EMPTY_ROSTER" {
		t.Errorf("expected EMPTY_ROSTER, got %s", code)
	}
}

func TestPlannerGenerate_OverwritesWeek(t *testing.T) {
	svc, assignmentRepo, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
	)

	stale := domain.Slot{Date: plannerWeek[2], ShiftID: "night", DepartmentID: "front", Index: 0}
	assignmentRepo.entries[stale] = "ghost"

	if _, err := svc.Generate(context.Background(), plannerRef); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if assignmentRepo.entries[stale] == "ghost" {
		t.Error("regeneration must replace the stored week entirely")
	}
}

func TestPlannerSetAssignment(t *testing.T) {
	svc, assignmentRepo, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
	)
	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "morning", DepartmentID: "front", Index: 0}

	decision, err := svc.SetAssignment(context.Background(), slot, "a")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allowed decision: %+v", decision)
	}
	if assignmentRepo.entries[slot] != "a" {
		t.Error("assignment was not persisted")
	}
}

func TestPlannerSetAssignment_SecondShiftSameDay(t *testing.T) {
	svc, assignmentRepo, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
	)
	held := domain.Slot{Date: plannerWeek[1], ShiftID: "morning", DepartmentID: "front", Index: 0}
	assignmentRepo.entries[held] = "a"

	evening := domain.Slot{Date: plannerWeek[1], ShiftID: "evening", DepartmentID: "front", Index: 0}
	_, err := svc.SetAssignment(context.Background(), evening, "a")
	if code := errCode(t, err); code != "CONFLICT" {
		t.Errorf("expected CONFLICT, got %s", code)
	}
	if _, ok := assignmentRepo.entries[evening]; ok {
		t.Error("rejected assignment must not be persisted")
	}
}

func TestPlannerSetAssignment_WarnsButSucceeds(t *testing.T) {
	member := plannerStaff("a", "front", domain.ExperienceExpert)
	member.ShiftPreferences = map[string]bool{"night": false}
	svc, assignmentRepo, _ := newPlannerFixture(member)

	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "night", DepartmentID: "front", Index: 0}
	decision, err := svc.SetAssignment(context.Background(), slot, "a")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(decision.Warnings) == 0 {
		t.Error("expected an advisory warning")
	}
	if assignmentRepo.entries[slot] != "a" {
		t.Error("warned assignment must still be persisted")
	}
}

func TestPlannerSetAssignment_IndexOutsideHeadcount(t *testing.T) {
	svc, _, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
	)
	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "morning", DepartmentID: "front", Index: 5}

	_, err := svc.SetAssignment(context.Background(), slot, "a")
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestPlannerSetAssignment_UnknownStaff(t *testing.T) {
	svc, _, _ := newPlannerFixture()
	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "morning", DepartmentID: "front", Index: 0}

	_, err := svc.SetAssignment(context.Background(), slot, "ghost")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestPlannerClearAssignment(t *testing.T) {
	svc, assignmentRepo, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
	)
	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "morning", DepartmentID: "front", Index: 0}
	assignmentRepo.entries[slot] = "a"

	if err := svc.ClearAssignment(context.Background(), slot); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := svc.ClearAssignment(context.Background(), slot); err == nil {
		t.Error("clearing an open slot should fail")
	}
}

func TestPlannerCandidates_RankedAndAnnotated(t *testing.T) {
	busy := plannerStaff("busy", "front", domain.ExperienceExpert)
	middle := plannerStaff("middle", "front", domain.ExperienceMiddle)
	expert := plannerStaff("expert", "front", domain.ExperienceExpert)
	svc, assignmentRepo, _ := newPlannerFixture(busy, middle, expert)

	// busy already works that day and should sink below the free members.
	assignmentRepo.entries[domain.Slot{Date: plannerWeek[1], ShiftID: "morning", DepartmentID: "front", Index: 0}] = "busy"

	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "evening", DepartmentID: "front", Index: 0}
	candidates, err := svc.Candidates(context.Background(), slot)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].Staff.UniqueID != "expert" {
		t.Errorf("expected the free expert first, got %s", candidates[0].Staff.UniqueID)
	}
	if candidates[2].Staff.UniqueID != "busy" || candidates[2].Decision.Allowed {
		t.Errorf("expected the conflicted member last and blocked, got %+v", candidates[2])
	}
}

func TestPlannerCandidates_FewerWarningsFirst(t *testing.T) {
	warned := plannerStaff("warned", "front", domain.ExperienceExpert)
	warned.ShiftPreferences = map[string]bool{"evening": false}
	clean := plannerStaff("clean", "front", domain.ExperienceExpert)
	svc, _, _ := newPlannerFixture(warned, clean)

	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "evening", DepartmentID: "front", Index: 0}
	candidates, err := svc.Candidates(context.Background(), slot)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if candidates[0].Staff.UniqueID != "clean" {
		t.Errorf("member without warnings should outrank the earlier-registered one, got %s first",
			candidates[0].Staff.UniqueID)
	}
}

// gatedStaffRepo parks ListByDepartment until release closes, keeping a
// generation pass in flight for as long as a test needs.
type gatedStaffRepo struct {
	*mockStaffRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedStaffRepo) ListByDepartment(ctx context.Context, departmentID string) ([]domain.Staff, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.mockStaffRepo.ListByDepartment(ctx, departmentID)
}

func TestPlannerGenerate_SinglePassAtATime(t *testing.T) {
	staffRepo := &gatedStaffRepo{
		mockStaffRepo: &mockStaffRepo{members: []domain.Staff{
			plannerStaff("a", "front", domain.ExperienceExpert),
		}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewPlannerService(PlannerDependencies{
		StaffRepo:      staffRepo,
		DepartmentRepo: testDepartments(),
		ShiftRepo:      testShifts(),
		AssignmentRepo: newMockAssignmentRepo(),
		Dispatcher:     events.NewInMemoryDispatcher(),
		Metrics:        observability.NewMetrics(),
		Logger:         zap.NewNop(),
	})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), plannerRef)
		done <- err
	}()
	<-staffRepo.entered

	_, err := svc.Generate(context.Background(), plannerRef)
	if code := errCode(t, err); code != "GENERATION_IN_PROGRESS" {
		t.Errorf("expected GENERATION_IN_PROGRESS, got %s", code)
	}

	close(staffRepo.release)
	if err := <-done; err != nil {
		t.Fatalf("first pass: %v", err)
	}

	// The busy flag resets once the pass completes.
	if _, err := svc.Generate(context.Background(), plannerRef); err != nil {
		t.Errorf("generate after completion: %v", err)
	}
}

func TestPlannerSlotsForDate(t *testing.T) {
	svc, assignmentRepo, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
	)
	date := plannerWeek[3]
	held := domain.Slot{Date: date, ShiftID: "morning", DepartmentID: "front", Index: 0}
	assignmentRepo.entries[held] = "a"
	// A row beyond the headcount must not be surfaced.
	assignmentRepo.entries[domain.Slot{Date: date, ShiftID: "morning", DepartmentID: "front", Index: 4}] = "a"

	statuses, err := svc.SlotsForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	// 2 departments x 4 shifts, headcount 1 each.
	if len(statuses) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(statuses))
	}
	if statuses[0].Slot != held || !statuses[0].Filled || statuses[0].StaffID != "a" {
		t.Errorf("unexpected first slot: %+v", statuses[0])
	}
	filled := 0
	for _, status := range statuses {
		if status.Filled {
			filled++
		}
	}
	if filled != 1 {
		t.Errorf("expected exactly 1 filled slot, got %d", filled)
	}

	if _, err := svc.SlotsForDate(context.Background(), domain.Date("yesterday")); err == nil {
		t.Error("malformed date must be rejected")
	}
}

func TestPlannerGetAssignment(t *testing.T) {
	svc, assignmentRepo, _ := newPlannerFixture(
		plannerStaff("a", "front", domain.ExperienceExpert),
	)
	slot := domain.Slot{Date: plannerWeek[1], ShiftID: "morning", DepartmentID: "front", Index: 0}
	assignmentRepo.entries[slot] = "a"

	member, err := svc.GetAssignment(context.Background(), slot)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if member.UniqueID != "a" {
		t.Errorf("expected member a, got %s", member.UniqueID)
	}

	open := domain.Slot{Date: plannerWeek[1], ShiftID: "day", DepartmentID: "front", Index: 0}
	if _, err := svc.GetAssignment(context.Background(), open); err == nil {
		t.Error("open slot should report not found")
	}
}
