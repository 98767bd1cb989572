package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// StaffRepository handles persistence for roster members. Listings are
// returned in registration order, which the allocation pass depends on.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	Update(ctx context.Context, staff *domain.Staff) error
	Delete(ctx context.Context, uniqueID string) error
	GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Staff, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Staff, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]domain.Staff, error)
	ListAll(ctx context.Context) ([]domain.Staff, error)
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `
        unique_id, employee_id, name, department_id, employment, experience, personality,
        weekly_max_hours, daily_max_hours, available_weekdays, unavailable_dates,
        shift_preferences, compatibility, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	const query = `
        INSERT INTO staff (unique_id, employee_id, name, department_id, employment, experience, personality,
                           weekly_max_hours, daily_max_hours, available_weekdays, unavailable_dates,
                           shift_preferences, compatibility)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.UniqueID,
		staff.EmployeeID,
		staff.Name,
		staff.DepartmentID,
		staff.Employment,
		staff.Experience,
		staff.Personality,
		staff.WeeklyMaxHours,
		staff.DailyMaxHours,
		weekdaysToInts(staff.AvailableWeekdays),
		datesToStrings(staff.UnavailableDates),
		staff.ShiftPreferences,
		staff.CompatibilityMap,
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	const query = `
        UPDATE staff
        SET name=$1, department_id=$2, employment=$3, experience=$4, personality=$5,
            weekly_max_hours=$6, daily_max_hours=$7, available_weekdays=$8, unavailable_dates=$9,
            shift_preferences=$10, compatibility=$11, updated_at=NOW()
        WHERE unique_id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		staff.Name,
		staff.DepartmentID,
		staff.Employment,
		staff.Experience,
		staff.Personality,
		staff.WeeklyMaxHours,
		staff.DailyMaxHours,
		weekdaysToInts(staff.AvailableWeekdays),
		datesToStrings(staff.UnavailableDates),
		staff.ShiftPreferences,
		staff.CompatibilityMap,
		staff.UniqueID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, uniqueID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE unique_id=$1`, uniqueID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Staff, error) {
	const query = `SELECT` + staffColumns + ` FROM staff WHERE unique_id=$1`
	return scanStaff(r.pool.QueryRow(ctx, query, uniqueID))
}

func (r *staffRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Staff, error) {
	const query = `SELECT` + staffColumns + ` FROM staff WHERE employee_id=$1`
	return scanStaff(r.pool.QueryRow(ctx, query, employeeID))
}

func (r *staffRepository) ListByDepartment(ctx context.Context, departmentID string) ([]domain.Staff, error) {
	const query = `SELECT` + staffColumns + ` FROM staff WHERE department_id=$1 ORDER BY seq`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaffRows(rows)
}

func (r *staffRepository) ListAll(ctx context.Context) ([]domain.Staff, error) {
	const query = `SELECT` + staffColumns + ` FROM staff ORDER BY seq`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaffRows(rows)
}

func (r *staffRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff WHERE department_id=$1`, departmentID).Scan(&count)
	return count, err
}

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var staff domain.Staff
	var weekdays []int32
	var dates []string
	if err := row.Scan(
		&staff.UniqueID,
		&staff.EmployeeID,
		&staff.Name,
		&staff.DepartmentID,
		&staff.Employment,
		&staff.Experience,
		&staff.Personality,
		&staff.WeeklyMaxHours,
		&staff.DailyMaxHours,
		&weekdays,
		&dates,
		&staff.ShiftPreferences,
		&staff.CompatibilityMap,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	staff.AvailableWeekdays = intsToWeekdays(weekdays)
	staff.UnavailableDates = stringsToDates(dates)
	return &staff, nil
}

func scanStaffRows(rows pgx.Rows) ([]domain.Staff, error) {
	var result []domain.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

func intsToWeekdays(values []int32) []time.Weekday {
	if len(values) == 0 {
		return nil
	}
	out := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		out = append(out, time.Weekday(v))
	}
	return out
}

func datesToStrings(dates []domain.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, string(d))
	}
	return out
}

func stringsToDates(values []string) []domain.Date {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.Date, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Date(v))
	}
	return out
}
