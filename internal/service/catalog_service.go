package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/repository"
	apperrors "github.com/spec-kit/shift-planner/pkg/util/errorutil"
)

// CatalogService exposes the department and shift catalogs. Shift timings
// and headcounts are editable; the set of departments is fixed.
type CatalogService struct {
	departments repository.DepartmentRepository
	shifts      repository.ShiftRepository
}

// CatalogDependencies encapsulates repositories for catalog management.
type CatalogDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	ShiftRepo      repository.ShiftRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{departments: deps.DepartmentRepo, shifts: deps.ShiftRepo}
}

// ListDepartments returns the department catalog in display order.
func (s *CatalogService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// ListShifts returns one department's shift definitions in display order.
func (s *CatalogService) ListShifts(ctx context.Context, departmentID string) ([]domain.ShiftDefinition, error) {
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("department", map[string]any{"department_id": departmentID})
		}
		return nil, apperrors.MapError(err)
	}
	defs, err := s.shifts.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return defs, nil
}

// ShiftsByDepartment loads the whole catalog grouped and ordered per
// department.
func (s *CatalogService) ShiftsByDepartment(ctx context.Context) (map[string][]domain.ShiftDefinition, error) {
	all, err := s.shifts.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	grouped := make(map[string][]domain.ShiftDefinition)
	for _, def := range all {
		grouped[def.DepartmentID] = append(grouped[def.DepartmentID], def)
	}
	return grouped, nil
}

// UpdateShiftInput replaces a shift definition's editable attributes as a
// whole; partial updates are not supported.
type UpdateShiftInput struct {
	Name              string
	StartTime         domain.TimeOfDay
	EndTime           domain.TimeOfDay
	RequiredHeadcount int
}

func (in UpdateShiftInput) validate() map[string]any {
	details := map[string]any{}
	if strings.TrimSpace(in.Name) == "" {
		details["name"] = "required"
	}
	if !in.StartTime.Valid() {
		details["start_time"] = "expected HH:MM"
	}
	if !in.EndTime.Valid() {
		details["end_time"] = "expected HH:MM"
	}
	if in.RequiredHeadcount < 1 {
		details["required_headcount"] = "must be at least 1"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// UpdateShift replaces the named definition. Already-generated schedules
// are left untouched; changes take effect on the next generation.
func (s *CatalogService) UpdateShift(ctx context.Context, departmentID, shiftID string, in UpdateShiftInput) (*domain.ShiftDefinition, error) {
	if details := in.validate(); details != nil {
		return nil, apperrors.NewValidationError("invalid shift definition", details)
	}

	def, err := s.shifts.Get(ctx, departmentID, shiftID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("shift", map[string]any{
				"department_id": departmentID,
				"shift_id":      shiftID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	def.Name = in.Name
	def.StartTime = in.StartTime
	def.EndTime = in.EndTime
	def.RequiredHeadcount = in.RequiredHeadcount

	if err := s.shifts.Update(ctx, def); err != nil {
		return nil, apperrors.MapError(err)
	}
	return def, nil
}

// SetRequiredHeadcount adjusts only the staffing target of one shift.
func (s *CatalogService) SetRequiredHeadcount(ctx context.Context, departmentID, shiftID string, count int) (*domain.ShiftDefinition, error) {
	if count < 1 {
		return nil, apperrors.NewValidationError("invalid headcount", map[string]any{"required_headcount": "must be at least 1"})
	}

	def, err := s.shifts.Get(ctx, departmentID, shiftID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("shift", map[string]any{
				"department_id": departmentID,
				"shift_id":      shiftID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	def.RequiredHeadcount = count
	if err := s.shifts.Update(ctx, def); err != nil {
		return nil, apperrors.MapError(err)
	}
	return def, nil
}
