package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shift-planner/internal/domain"
)

type mockStaffRepo struct {
	members []domain.Staff
}

func (m *mockStaffRepo) Create(_ context.Context, staff *domain.Staff) error {
	m.members = append(m.members, *staff)
	return nil
}

func (m *mockStaffRepo) Update(_ context.Context, staff *domain.Staff) error {
	for i := range m.members {
		if m.members[i].UniqueID == staff.UniqueID {
			m.members[i] = *staff
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockStaffRepo) Delete(_ context.Context, uniqueID string) error {
	for i := range m.members {
		if m.members[i].UniqueID == uniqueID {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockStaffRepo) GetByUniqueID(_ context.Context, uniqueID string) (*domain.Staff, error) {
	for i := range m.members {
		if m.members[i].UniqueID == uniqueID {
			copied := m.members[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockStaffRepo) GetByEmployeeID(_ context.Context, employeeID string) (*domain.Staff, error) {
	for i := range m.members {
		if m.members[i].EmployeeID == employeeID {
			copied := m.members[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockStaffRepo) ListByDepartment(_ context.Context, departmentID string) ([]domain.Staff, error) {
	var out []domain.Staff
	for _, member := range m.members {
		if member.DepartmentID == departmentID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockStaffRepo) ListAll(_ context.Context) ([]domain.Staff, error) {
	return append([]domain.Staff{}, m.members...), nil
}

func (m *mockStaffRepo) CountByDepartment(_ context.Context, departmentID string) (int, error) {
	count := 0
	for _, member := range m.members {
		if member.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

type mockDepartmentRepo struct {
	departments []domain.Department
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	for i := range m.departments {
		if m.departments[i].ID == id {
			copied := m.departments[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	return append([]domain.Department{}, m.departments...), nil
}

type mockShiftRepo struct {
	defs []domain.ShiftDefinition
}

func (m *mockShiftRepo) Get(_ context.Context, departmentID, shiftID string) (*domain.ShiftDefinition, error) {
	for i := range m.defs {
		if m.defs[i].DepartmentID == departmentID && m.defs[i].ID == shiftID {
			copied := m.defs[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockShiftRepo) Update(_ context.Context, def *domain.ShiftDefinition) error {
	for i := range m.defs {
		if m.defs[i].DepartmentID == def.DepartmentID && m.defs[i].ID == def.ID {
			m.defs[i] = *def
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockShiftRepo) ListByDepartment(_ context.Context, departmentID string) ([]domain.ShiftDefinition, error) {
	var out []domain.ShiftDefinition
	for _, def := range m.defs {
		if def.DepartmentID == departmentID {
			out = append(out, def)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) ListAll(_ context.Context) ([]domain.ShiftDefinition, error) {
	return append([]domain.ShiftDefinition{}, m.defs...), nil
}

type mockAssignmentRepo struct {
	entries map[domain.Slot]string
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{entries: make(map[domain.Slot]string)}
}

func (m *mockAssignmentRepo) ReplaceWeek(_ context.Context, dates []domain.Date, entries map[domain.Slot]string) error {
	inWeek := make(map[domain.Date]bool, len(dates))
	for _, date := range dates {
		inWeek[date] = true
	}
	for slot := range m.entries {
		if inWeek[slot.Date] {
			delete(m.entries, slot)
		}
	}
	for slot, staffID := range entries {
		m.entries[slot] = staffID
	}
	return nil
}

func (m *mockAssignmentRepo) Set(_ context.Context, slot domain.Slot, staffID string) error {
	m.entries[slot] = staffID
	return nil
}

func (m *mockAssignmentRepo) Clear(_ context.Context, slot domain.Slot) error {
	if _, ok := m.entries[slot]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.entries, slot)
	return nil
}

func (m *mockAssignmentRepo) Get(_ context.Context, slot domain.Slot) (string, error) {
	staffID, ok := m.entries[slot]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return staffID, nil
}

func (m *mockAssignmentRepo) ListByDates(_ context.Context, dates []domain.Date) (map[domain.Slot]string, error) {
	inWeek := make(map[domain.Date]bool, len(dates))
	for _, date := range dates {
		inWeek[date] = true
	}
	out := make(map[domain.Slot]string)
	for slot, staffID := range m.entries {
		if inWeek[slot.Date] {
			out[slot] = staffID
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) DeleteByStaff(_ context.Context, staffID string) (int64, error) {
	var removed int64
	for slot, id := range m.entries {
		if id == staffID {
			delete(m.entries, slot)
			removed++
		}
	}
	return removed, nil
}

type mockManagerRepo struct {
	managers []domain.Manager
}

func (m *mockManagerRepo) Create(_ context.Context, manager *domain.Manager) error {
	if manager.ID == "" {
		manager.ID = "mgr-1"
	}
	m.managers = append(m.managers, *manager)
	return nil
}

func (m *mockManagerRepo) GetByID(_ context.Context, id string) (*domain.Manager, error) {
	for i := range m.managers {
		if m.managers[i].ID == id {
			copied := m.managers[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockManagerRepo) GetByEmail(_ context.Context, email string) (*domain.Manager, error) {
	for i := range m.managers {
		if m.managers[i].Email == email {
			copied := m.managers[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockManagerRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	for i := range m.managers {
		if m.managers[i].ID == id {
			m.managers[i].PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockManagerRepo) Count(_ context.Context) (int, error) {
	return len(m.managers), nil
}
