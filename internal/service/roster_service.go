package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/events"
	"github.com/spec-kit/shift-planner/internal/repository"
	apperrors "github.com/spec-kit/shift-planner/pkg/util/errorutil"
)

// RosterService manages the staff roster: registration, updates, removal
// and department summaries.
type RosterService struct {
	staff       repository.StaffRepository
	departments repository.DepartmentRepository
	assignments repository.AssignmentRepository
	dispatcher  events.Dispatcher
}

// RosterDependencies encapsulates repositories required for roster management.
type RosterDependencies struct {
	StaffRepo      repository.StaffRepository
	DepartmentRepo repository.DepartmentRepository
	AssignmentRepo repository.AssignmentRepository
	Dispatcher     events.Dispatcher
}

// NewRosterService constructs the service.
func NewRosterService(deps RosterDependencies) *RosterService {
	return &RosterService{
		staff:       deps.StaffRepo,
		departments: deps.DepartmentRepo,
		assignments: deps.AssignmentRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// RegisterStaffInput carries all attributes for a new roster member.
type RegisterStaffInput struct {
	EmployeeID        string
	Name              string
	DepartmentID      string
	Employment        domain.EmploymentType
	Experience        domain.ExperienceTier
	Personality       domain.Personality
	WeeklyMaxHours    int
	DailyMaxHours     int
	AvailableWeekdays []time.Weekday
	UnavailableDates  []domain.Date
	ShiftPreferences  map[string]bool
	CompatibilityMap  map[string]domain.Compatibility
}

func (in RegisterStaffInput) validate() map[string]any {
	details := map[string]any{}
	if strings.TrimSpace(in.EmployeeID) == "" {
		details["employee_id"] = "required"
	}
	if strings.TrimSpace(in.Name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(in.DepartmentID) == "" {
		details["department_id"] = "required"
	}
	if !in.Employment.Valid() {
		details["employment"] = "unknown employment type"
	}
	if !in.Experience.Valid() {
		details["experience"] = "unknown experience tier"
	}
	if in.Personality != "" && !in.Personality.Valid() {
		details["personality"] = "unknown personality"
	}
	if in.WeeklyMaxHours < 0 {
		details["weekly_max_hours"] = "must not be negative"
	}
	if in.DailyMaxHours < 0 {
		details["daily_max_hours"] = "must not be negative"
	}
	for _, day := range in.AvailableWeekdays {
		if day < time.Sunday || day > time.Saturday {
			details["available_weekdays"] = "weekday out of range"
			break
		}
	}
	for _, date := range in.UnavailableDates {
		if _, err := domain.ParseDate(string(date)); err != nil {
			details["unavailable_dates"] = err.Error()
			break
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// Register adds a new member to the roster. The employee id must be unique
// across all departments and the department must have spare capacity.
func (s *RosterService) Register(ctx context.Context, in RegisterStaffInput) (*domain.Staff, error) {
	if details := in.validate(); details != nil {
		return nil, apperrors.NewValidationError("invalid staff attributes", details)
	}

	dept, err := s.departments.GetByID(ctx, in.DepartmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("department", map[string]any{"department_id": in.DepartmentID})
		}
		return nil, apperrors.MapError(err)
	}

	if existing, err := s.staff.GetByEmployeeID(ctx, in.EmployeeID); err == nil && existing != nil {
		return nil, apperrors.NewDuplicateID("employee id already registered", map[string]any{"employee_id": in.EmployeeID})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	count, err := s.staff.CountByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if dept.MaxStaff > 0 && count >= dept.MaxStaff {
		return nil, apperrors.NewCapacityExceeded("department is full", map[string]any{
			"department_id": dept.ID,
			"max_staff":     dept.MaxStaff,
		})
	}

	staff := &domain.Staff{
		UniqueID:          uuid.NewString(),
		EmployeeID:        in.EmployeeID,
		Name:              in.Name,
		DepartmentID:      dept.ID,
		Employment:        in.Employment,
		Experience:        in.Experience,
		Personality:       in.Personality,
		WeeklyMaxHours:    in.WeeklyMaxHours,
		DailyMaxHours:     in.DailyMaxHours,
		AvailableWeekdays: in.AvailableWeekdays,
		UnavailableDates:  in.UnavailableDates,
		ShiftPreferences:  in.ShiftPreferences,
		CompatibilityMap:  in.CompatibilityMap,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventStaffRegistered, events.StaffRegisteredPayload{
		StaffID:      staff.UniqueID,
		EmployeeID:   staff.EmployeeID,
		DepartmentID: staff.DepartmentID,
	})
	return staff, nil
}

// Update replaces the mutable attributes of an existing member. Department
// moves are validated against the target department's capacity.
func (s *RosterService) Update(ctx context.Context, uniqueID string, in RegisterStaffInput) (*domain.Staff, error) {
	if details := in.validate(); details != nil {
		return nil, apperrors.NewValidationError("invalid staff attributes", details)
	}

	staff, err := s.staff.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": uniqueID})
		}
		return nil, apperrors.MapError(err)
	}

	if in.EmployeeID != staff.EmployeeID {
		return nil, apperrors.NewValidationError("employee id cannot change", map[string]any{"employee_id": in.EmployeeID})
	}

	if in.DepartmentID != staff.DepartmentID {
		dept, err := s.departments.GetByID(ctx, in.DepartmentID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("department", map[string]any{"department_id": in.DepartmentID})
			}
			return nil, apperrors.MapError(err)
		}
		count, err := s.staff.CountByDepartment(ctx, dept.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if dept.MaxStaff > 0 && count >= dept.MaxStaff {
			return nil, apperrors.NewCapacityExceeded("department is full", map[string]any{
				"department_id": dept.ID,
				"max_staff":     dept.MaxStaff,
			})
		}
	}

	staff.Name = in.Name
	staff.DepartmentID = in.DepartmentID
	staff.Employment = in.Employment
	staff.Experience = in.Experience
	staff.Personality = in.Personality
	staff.WeeklyMaxHours = in.WeeklyMaxHours
	staff.DailyMaxHours = in.DailyMaxHours
	staff.AvailableWeekdays = in.AvailableWeekdays
	staff.UnavailableDates = in.UnavailableDates
	staff.ShiftPreferences = in.ShiftPreferences
	staff.CompatibilityMap = in.CompatibilityMap

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// Remove deletes a member and purges every assignment they hold. The
// vacated slots simply become open.
func (s *RosterService) Remove(ctx context.Context, uniqueID string) error {
	staff, err := s.staff.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("staff", map[string]any{"staff_id": uniqueID})
		}
		return apperrors.MapError(err)
	}

	removed, err := s.assignments.DeleteByStaff(ctx, uniqueID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.staff.Delete(ctx, uniqueID); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventStaffRemoved, events.StaffRemovedPayload{
		StaffID:            uniqueID,
		DepartmentID:       staff.DepartmentID,
		RemovedAssignments: removed,
	})
	return nil
}

// Get fetches one member by unique id.
func (s *RosterService) Get(ctx context.Context, uniqueID string) (*domain.Staff, error) {
	staff, err := s.staff.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": uniqueID})
		}
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// List returns the roster, optionally scoped to one department, in
// registration order.
func (s *RosterService) List(ctx context.Context, departmentID string) ([]domain.Staff, error) {
	if departmentID == "" {
		return s.staff.ListAll(ctx)
	}
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("department", map[string]any{"department_id": departmentID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.staff.ListByDepartment(ctx, departmentID)
}

// DepartmentSummary aggregates headcount per department.
type DepartmentSummary struct {
	DepartmentID string         `json:"department_id"`
	Name         string         `json:"name"`
	MaxStaff     int            `json:"max_staff"`
	Registered   int            `json:"registered"`
	ByExperience map[string]int `json:"by_experience"`
}

// Summary reports registration counts and tier breakdown per department,
// in catalog order.
func (s *RosterService) Summary(ctx context.Context) ([]DepartmentSummary, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	all, err := s.staff.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	byDept := make(map[string][]domain.Staff)
	for _, member := range all {
		byDept[member.DepartmentID] = append(byDept[member.DepartmentID], member)
	}

	result := make([]DepartmentSummary, 0, len(depts))
	for _, dept := range depts {
		summary := DepartmentSummary{
			DepartmentID: dept.ID,
			Name:         dept.Name,
			MaxStaff:     dept.MaxStaff,
			Registered:   len(byDept[dept.ID]),
			ByExperience: make(map[string]int),
		}
		for _, member := range byDept[dept.ID] {
			summary.ByExperience[string(member.Experience)]++
		}
		result = append(result, summary)
	}
	return result, nil
}

func (s *RosterService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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
