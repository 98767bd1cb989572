package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// ManagerRepository handles persistence for manager accounts.
type ManagerRepository interface {
	Create(ctx context.Context, manager *domain.Manager) error
	GetByID(ctx context.Context, id string) (*domain.Manager, error)
	GetByEmail(ctx context.Context, email string) (*domain.Manager, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Count(ctx context.Context) (int, error)
}

type managerRepository struct {
	pool *pgxpool.Pool
}

// NewManagerRepository instantiates the repository.
func NewManagerRepository(pool *pgxpool.Pool) ManagerRepository {
	return &managerRepository{pool: pool}
}

func (r *managerRepository) Create(ctx context.Context, manager *domain.Manager) error {
	const query = `
        INSERT INTO managers (name, email, password_hash)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		manager.Name,
		manager.Email,
		manager.PasswordHash,
	).Scan(&manager.ID, &manager.CreatedAt, &manager.UpdatedAt)
}

func (r *managerRepository) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM managers WHERE id=$1`
	return scanManager(r.pool.QueryRow(ctx, query, id))
}

func (r *managerRepository) GetByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM managers WHERE email=$1`
	return scanManager(r.pool.QueryRow(ctx, query, email))
}

func (r *managerRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE managers SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *managerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM managers`).Scan(&count)
	return count, err
}

func scanManager(row pgx.Row) (*domain.Manager, error) {
	var manager domain.Manager
	if err := row.Scan(
		&manager.ID,
		&manager.Name,
		&manager.Email,
		&manager.PasswordHash,
		&manager.CreatedAt,
		&manager.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &manager, nil
}
