package service

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/events"
	"github.com/spec-kit/shift-planner/internal/observability"
	"github.com/spec-kit/shift-planner/internal/persistence"
	"github.com/spec-kit/shift-planner/internal/repository"
	"github.com/spec-kit/shift-planner/internal/schedule"
	apperrors "github.com/spec-kit/shift-planner/pkg/util/errorutil"
)

const generateLockKey = "shift-planner:generate:lock"

// PlannerService owns the weekly schedule: generation, the week view,
// manual overrides and replacement candidate lookup.
type PlannerService struct {
	staff       repository.StaffRepository
	departments repository.DepartmentRepository
	shifts      repository.ShiftRepository
	assignments repository.AssignmentRepository
	redis       *persistence.Redis
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	lockTTL     time.Duration

	busy atomic.Bool
}

// PlannerDependencies encapsulates everything the planner needs.
type PlannerDependencies struct {
	StaffRepo      repository.StaffRepository
	DepartmentRepo repository.DepartmentRepository
	ShiftRepo      repository.ShiftRepository
	AssignmentRepo repository.AssignmentRepository
	Redis          *persistence.Redis
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	LockTTL        time.Duration
}

// NewPlannerService constructs the service.
func NewPlannerService(deps PlannerDependencies) *PlannerService {
	lockTTL := deps.LockTTL
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &PlannerService{
		staff:       deps.StaffRepo,
		departments: deps.DepartmentRepo,
		shifts:      deps.ShiftRepo,
		assignments: deps.AssignmentRepo,
		redis:       deps.Redis,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		lockTTL:     lockTTL,
	}
}

// GenerateResult reports the outcome of one generation pass.
type GenerateResult struct {
	Week       [7]domain.Date `json:"week"`
	TotalSlots int            `json:"total_slots"`
	Filled     int            `json:"filled"`
	Unfilled   []domain.Slot  `json:"unfilled"`
}

// Generate builds and persists the schedule for the week containing ref,
// replacing whatever that week held before. Only one pass may run at a
// time, across instances.
func (s *PlannerService) Generate(ctx context.Context, ref time.Time) (*GenerateResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, apperrors.NewGenerationInProgress()
	}
	defer s.busy.Store(false)

	if err := s.acquireLock(ctx); err != nil {
		return nil, err
	}
	defer s.releaseLock(ctx)

	started := time.Now()
	week := schedule.WeekOf(ref)

	depts, shiftsByDept, _, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	rosterByDept := make(map[string][]domain.Staff, len(depts))
	for _, dept := range depts {
		members, err := s.staff.ListByDepartment(ctx, dept.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		rosterByDept[dept.ID] = members
	}

	ledger, report, err := schedule.Generate(schedule.GenerateInput{
		Week:         week,
		Departments:  depts,
		Shifts:       shiftsByDept,
		RosterByDept: rosterByDept,
	})
	if err == schedule.ErrEmptyRoster {
		return nil, apperrors.NewEmptyRoster("cannot generate a schedule with an empty roster")
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.assignments.ReplaceWeek(ctx, week[:], ledger); err != nil {
		return nil, apperrors.MapError(err)
	}

	duration := time.Since(started)
	s.metrics.RecordGeneration(report.Filled, len(report.Unfilled), duration)
	s.logger.Info("schedule generated",
		zap.String("week_start", string(week[0])),
		zap.Int("total_slots", report.TotalSlots),
		zap.Int("filled", report.Filled),
		zap.Int("unfilled", len(report.Unfilled)),
		zap.Duration("duration", duration),
	)
	s.publish(ctx, events.EventScheduleGenerated, events.ScheduleGeneratedPayload{
		WeekStart:  week[0],
		TotalSlots: report.TotalSlots,
		Filled:     report.Filled,
		Unfilled:   len(report.Unfilled),
	})

	return &GenerateResult{
		Week:       week,
		TotalSlots: report.TotalSlots,
		Filled:     report.Filled,
		Unfilled:   report.Unfilled,
	}, nil
}

// WeekView bundles everything needed to render one week of the schedule.
type WeekView struct {
	Week        [7]domain.Date
	Departments []domain.Department
	Shifts      map[string][]domain.ShiftDefinition
	Ledger      schedule.Ledger
	StaffByID   map[string]domain.Staff
}

// WeekViewFor loads the stored schedule for the week containing ref.
func (s *PlannerService) WeekViewFor(ctx context.Context, ref time.Time) (*WeekView, error) {
	week := schedule.WeekOf(ref)

	depts, shiftsByDept, _, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.assignments.ListByDates(ctx, week[:])
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	all, err := s.staff.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	staffByID := make(map[string]domain.Staff, len(all))
	for _, member := range all {
		staffByID[member.UniqueID] = member
	}

	return &WeekView{
		Week:        week,
		Departments: depts,
		Shifts:      shiftsByDept,
		Ledger:      schedule.Ledger(entries),
		StaffByID:   staffByID,
	}, nil
}

// SlotStatus pairs a derived slot with its current holder, if any.
type SlotStatus struct {
	Slot    domain.Slot
	StaffID string
	Filled  bool
}

// SlotsForDate enumerates every slot the catalog derives for one date, in
// catalog order, with its current assignment. Stored rows whose index falls
// outside the current headcount are not surfaced.
func (s *PlannerService) SlotsForDate(ctx context.Context, date domain.Date) ([]SlotStatus, error) {
	if _, err := domain.ParseDate(string(date)); err != nil {
		return nil, apperrors.NewValidationError("invalid date", map[string]any{"date": string(date)})
	}

	depts, shiftsByDept, _, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.assignments.ListByDates(ctx, []domain.Date{date})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var out []SlotStatus
	for _, dept := range depts {
		for _, shift := range shiftsByDept[dept.ID] {
			for index := 0; index < shift.Headcount(); index++ {
				slot := domain.Slot{
					Date:         date,
					ShiftID:      shift.ID,
					DepartmentID: dept.ID,
					Index:        index,
				}
				staffID, filled := entries[slot]
				out = append(out, SlotStatus{Slot: slot, StaffID: staffID, Filled: filled})
			}
		}
	}
	return out, nil
}

// GetAssignment resolves the member holding one slot.
func (s *PlannerService) GetAssignment(ctx context.Context, slot domain.Slot) (*domain.Staff, error) {
	staffID, err := s.assignments.Get(ctx, slot)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"slot": slot.String()})
		}
		return nil, apperrors.MapError(err)
	}
	member, err := s.staff.GetByUniqueID(ctx, staffID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// SetAssignment manually places a member into a slot, overwriting any
// previous holder. Hard conflicts reject the edit; advisory warnings are
// returned alongside success.
func (s *PlannerService) SetAssignment(ctx context.Context, slot domain.Slot, staffID string) (*schedule.Decision, error) {
	member, err := s.staff.GetByUniqueID(ctx, staffID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}

	_, _, lookup, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateSlot(slot, lookup); err != nil {
		return nil, err
	}

	ledger, err := s.loadWeekLedger(ctx, slot.Date)
	if err != nil {
		return nil, err
	}

	decision := schedule.CanAssign(member, slot, ledger, lookup)
	if !decision.Allowed {
		details := map[string]any{"slot": slot.String()}
		for _, v := range decision.Violations {
			details[v.Code] = v.Message
		}
		return &decision, apperrors.NewConflict("assignment conflicts with current schedule", details)
	}

	if err := s.assignments.Set(ctx, slot, staffID); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAssignmentChanged, events.AssignmentChangedPayload{
		Slot:     slot.String(),
		StaffID:  &staffID,
		Warnings: warningCodes(decision.Warnings),
	})
	return &decision, nil
}

// ClearAssignment vacates a slot.
func (s *PlannerService) ClearAssignment(ctx context.Context, slot domain.Slot) error {
	if err := s.assignments.Clear(ctx, slot); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("assignment", map[string]any{"slot": slot.String()})
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventAssignmentChanged, events.AssignmentChangedPayload{Slot: slot.String()})
	return nil
}

// Candidate pairs a roster member with the validator's verdict for one slot.
type Candidate struct {
	Staff    domain.Staff
	Decision schedule.Decision
}

// Candidates evaluates every member of the slot's department as a
// replacement, eligible members first, then fewer warnings, then
// experience tier, ties broken by registration order.
func (s *PlannerService) Candidates(ctx context.Context, slot domain.Slot) ([]Candidate, error) {
	_, _, lookup, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateSlot(slot, lookup); err != nil {
		return nil, err
	}

	members, err := s.staff.ListByDepartment(ctx, slot.DepartmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ledger, err := s.loadWeekLedger(ctx, slot.Date)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(members))
	for i := range members {
		candidates = append(candidates, Candidate{
			Staff:    members[i],
			Decision: schedule.CanAssign(&members[i], slot, ledger, lookup),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Decision.Allowed != candidates[j].Decision.Allowed {
			return candidates[i].Decision.Allowed
		}
		wi, wj := len(candidates[i].Decision.Warnings), len(candidates[j].Decision.Warnings)
		if wi != wj {
			return wi < wj
		}
		return candidates[i].Staff.Experience.Rank() > candidates[j].Staff.Experience.Rank()
	})
	return candidates, nil
}

func (s *PlannerService) loadCatalog(ctx context.Context) ([]domain.Department, map[string][]domain.ShiftDefinition, schedule.ShiftLookup, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, nil, nil, apperrors.MapError(err)
	}
	all, err := s.shifts.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, apperrors.MapError(err)
	}
	shiftsByDept := make(map[string][]domain.ShiftDefinition)
	for _, def := range all {
		shiftsByDept[def.DepartmentID] = append(shiftsByDept[def.DepartmentID], def)
	}
	lookup := func(departmentID, shiftID string) (domain.ShiftDefinition, bool) {
		for _, def := range shiftsByDept[departmentID] {
			if def.ID == shiftID {
				return def, true
			}
		}
		return domain.ShiftDefinition{}, false
	}
	return depts, shiftsByDept, lookup, nil
}

func (s *PlannerService) loadWeekLedger(ctx context.Context, date domain.Date) (schedule.Ledger, error) {
	week := schedule.WeekOf(date.Time())
	entries, err := s.assignments.ListByDates(ctx, week[:])
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return schedule.Ledger(entries), nil
}

func (s *PlannerService) acquireLock(ctx context.Context) error {
	if s.redis == nil || s.redis.Client == nil {
		return nil
	}
	ok, err := s.redis.Client.SetNX(ctx, generateLockKey, "1", s.lockTTL).Result()
	if err != nil {
		s.logger.Warn("generation lock unavailable, proceeding unlocked", zap.Error(err))
		return nil
	}
	if !ok {
		return apperrors.NewGenerationInProgress()
	}
	return nil
}

func (s *PlannerService) releaseLock(ctx context.Context) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Del(ctx, generateLockKey).Err(); err != nil {
		s.logger.Warn("failed to release generation lock", zap.Error(err))
	}
}

func (s *PlannerService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// validateSlot rejects slots naming unknown shifts, indexes outside the
// headcount or malformed dates.
func validateSlot(slot domain.Slot, lookup schedule.ShiftLookup) error {
	if _, err := domain.ParseDate(string(slot.Date)); err != nil {
		return apperrors.NewValidationError("invalid slot date", map[string]any{"date": string(slot.Date)})
	}
	shift, ok := lookup(slot.DepartmentID, slot.ShiftID)
	if !ok {
		return apperrors.NewNotFound("shift", map[string]any{
			"department_id": slot.DepartmentID,
			"shift_id":      slot.ShiftID,
		})
	}
	if slot.Index < 0 || slot.Index >= shift.Headcount() {
		return apperrors.NewValidationError("slot index outside required headcount", map[string]any{
			"slot_index":         slot.Index,
			"required_headcount": shift.Headcount(),
		})
	}
	return nil
}

func warningCodes(warnings []schedule.Violation) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Code)
	}
	return out
}
