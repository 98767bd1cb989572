package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// ShiftRepository manages the per-department shift catalog.
type ShiftRepository interface {
	Get(ctx context.Context, departmentID, shiftID string) (*domain.ShiftDefinition, error)
	Update(ctx context.Context, def *domain.ShiftDefinition) error
	ListByDepartment(ctx context.Context, departmentID string) ([]domain.ShiftDefinition, error)
	ListAll(ctx context.Context) ([]domain.ShiftDefinition, error)
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository builds the repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

const shiftColumns = `
        id, department_id, name, start_time, end_time, required_headcount, position, created_at, updated_at`

func (r *shiftRepository) Get(ctx context.Context, departmentID, shiftID string) (*domain.ShiftDefinition, error) {
	const query = `SELECT` + shiftColumns + ` FROM shift_definitions WHERE department_id=$1 AND id=$2`
	var def domain.ShiftDefinition
	if err := r.pool.QueryRow(ctx, query, departmentID, shiftID).Scan(
		&def.ID,
		&def.DepartmentID,
		&def.Name,
		&def.StartTime,
		&def.EndTime,
		&def.RequiredHeadcount,
		&def.Position,
		&def.CreatedAt,
		&def.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *shiftRepository) Update(ctx context.Context, def *domain.ShiftDefinition) error {
	const query = `
        UPDATE shift_definitions
        SET name=$1, start_time=$2, end_time=$3, required_headcount=$4, updated_at=NOW()
        WHERE department_id=$5 AND id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		def.Name,
		def.StartTime,
		def.EndTime,
		def.RequiredHeadcount,
		def.DepartmentID,
		def.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shiftRepository) ListByDepartment(ctx context.Context, departmentID string) ([]domain.ShiftDefinition, error) {
	const query = `SELECT` + shiftColumns + ` FROM shift_definitions WHERE department_id=$1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShiftRows(rows)
}

func (r *shiftRepository) ListAll(ctx context.Context) ([]domain.ShiftDefinition, error) {
	const query = `SELECT` + shiftColumns + ` FROM shift_definitions ORDER BY department_id, position`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShiftRows(rows)
}

func scanShiftRows(rows pgx.Rows) ([]domain.ShiftDefinition, error) {
	var result []domain.ShiftDefinition
	for rows.Next() {
		var def domain.ShiftDefinition
		if err := rows.Scan(
			&def.ID,
			&def.DepartmentID,
			&def.Name,
			&def.StartTime,
			&def.EndTime,
			&def.RequiredHeadcount,
			&def.Position,
			&def.CreatedAt,
			&def.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, def)
	}
	return result, rows.Err()
}
