package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// AssignmentRepository persists the sparse assignment ledger. Only filled
// slots are stored; an absent row means the slot is open.
type AssignmentRepository interface {
	// ReplaceWeek atomically swaps all rows in the given dates for the
	// provided entries.
	ReplaceWeek(ctx context.Context, dates []domain.Date, entries map[domain.Slot]string) error
	Set(ctx context.Context, slot domain.Slot, staffID string) error
	Clear(ctx context.Context, slot domain.Slot) error
	Get(ctx context.Context, slot domain.Slot) (string, error)
	ListByDates(ctx context.Context, dates []domain.Date) (map[domain.Slot]string, error)
	DeleteByStaff(ctx context.Context, staffID string) (int64, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository builds the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) ReplaceWeek(ctx context.Context, dates []domain.Date, entries map[domain.Slot]string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM assignments WHERE date = ANY($1)`, datesToStrings(dates)); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for slot, staffID := range entries {
		batch.Queue(
			`INSERT INTO assignments (date, shift_id, department_id, slot_index, staff_id)
             VALUES ($1,$2,$3,$4,$5)`,
			string(slot.Date), slot.ShiftID, slot.DepartmentID, slot.Index, staffID,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *assignmentRepository) Set(ctx context.Context, slot domain.Slot, staffID string) error {
	const query = `
        INSERT INTO assignments (date, shift_id, department_id, slot_index, staff_id)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (date, shift_id, department_id, slot_index)
        DO UPDATE SET staff_id = EXCLUDED.staff_id, updated_at = NOW()`
	_, err := r.pool.Exec(ctx, query,
		string(slot.Date), slot.ShiftID, slot.DepartmentID, slot.Index, staffID)
	return err
}

func (r *assignmentRepository) Clear(ctx context.Context, slot domain.Slot) error {
	const query = `
        DELETE FROM assignments
        WHERE date=$1 AND shift_id=$2 AND department_id=$3 AND slot_index=$4`
	cmd, err := r.pool.Exec(ctx, query,
		string(slot.Date), slot.ShiftID, slot.DepartmentID, slot.Index)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) Get(ctx context.Context, slot domain.Slot) (string, error) {
	const query = `
        SELECT staff_id FROM assignments
        WHERE date=$1 AND shift_id=$2 AND department_id=$3 AND slot_index=$4`
	var staffID string
	err := r.pool.QueryRow(ctx, query,
		string(slot.Date), slot.ShiftID, slot.DepartmentID, slot.Index).Scan(&staffID)
	return staffID, err
}

func (r *assignmentRepository) ListByDates(ctx context.Context, dates []domain.Date) (map[domain.Slot]string, error) {
	const query = `
        SELECT date, shift_id, department_id, slot_index, staff_id
        FROM assignments WHERE date = ANY($1)`
	rows, err := r.pool.Query(ctx, query, datesToStrings(dates))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.Slot]string)
	for rows.Next() {
		var slot domain.Slot
		var date string
		var staffID string
		if err := rows.Scan(&date, &slot.ShiftID, &slot.DepartmentID, &slot.Index, &staffID); err != nil {
			return nil, err
		}
		slot.Date = domain.Date(date)
		result[slot] = staffID
	}
	return result, rows.Err()
}

func (r *assignmentRepository) DeleteByStaff(ctx context.Context, staffID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE staff_id=$1`, staffID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
