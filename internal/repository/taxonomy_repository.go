package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
)

// TaxonomyRepository exposes the Department/SubDepartment/PriorityLevel
// graph as queryable reference data, plus the get-or-create operations
// the seeder relies on for idempotence.
type TaxonomyRepository interface {
	GetPriorityLevel(ctx context.Context, level int) (*domain.PriorityLevel, error)
	ListPriorityLevels(ctx context.Context) ([]domain.PriorityLevel, error)
	GetOrCreatePriorityLevel(ctx context.Context, level int, description string) (*domain.PriorityLevel, bool, error)

	GetDepartment(ctx context.Context, name string) (*domain.Department, error)
	GetDepartmentByID(ctx context.Context, id string) (*domain.Department, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	GetOrCreateDepartment(ctx context.Context, dept *domain.Department) (bool, error)

	GetSubDepartment(ctx context.Context, name string) (*domain.SubDepartment, error)
	GetSubDepartmentByID(ctx context.Context, id string) (*domain.SubDepartment, error)
	ListSubDepartments(ctx context.Context, departmentID string) ([]domain.SubDepartment, error)
	GetOrCreateSubDepartment(ctx context.Context, sub *domain.SubDepartment) (bool, error)
}

// TransactionalTaxonomy is implemented by stores that can scope a group
// of seeding writes to a single transaction.
type TransactionalTaxonomy interface {
	RunInTransaction(ctx context.Context, fn func(TaxonomyRepository) error) error
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type taxonomyRepository struct {
	db   querier
	pool *pgxpool.Pool
}

// NewTaxonomyRepository instantiates the repository.
func NewTaxonomyRepository(pool *pgxpool.Pool) TaxonomyRepository {
	return &taxonomyRepository{db: pool, pool: pool}
}

func (r *taxonomyRepository) RunInTransaction(ctx context.Context, fn func(TaxonomyRepository) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&taxonomyRepository{db: tx})
	})
}

func (r *taxonomyRepository) GetPriorityLevel(ctx context.Context, level int) (*domain.PriorityLevel, error) {
	const query = `SELECT level, description FROM priority_levels WHERE level=$1`
	var pl domain.PriorityLevel
	if err := r.db.QueryRow(ctx, query, level).Scan(&pl.Level, &pl.Description); err != nil {
		return nil, err
	}
	return &pl, nil
}

func (r *taxonomyRepository) ListPriorityLevels(ctx context.Context) ([]domain.PriorityLevel, error) {
	const query = `SELECT level, description FROM priority_levels ORDER BY level`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PriorityLevel
	for rows.Next() {
		var pl domain.PriorityLevel
		if err := rows.Scan(&pl.Level, &pl.Description); err != nil {
			return nil, err
		}
		result = append(result, pl)
	}
	return result, rows.Err()
}

func (r *taxonomyRepository) GetOrCreatePriorityLevel(ctx context.Context, level int, description string) (*domain.PriorityLevel, bool, error) {
	const insert = `
        INSERT INTO priority_levels (level, description)
        VALUES ($1,$2)
        ON CONFLICT (level) DO NOTHING`
	cmd, err := r.db.Exec(ctx, insert, level, description)
	if err != nil {
		return nil, false, err
	}
	pl, err := r.GetPriorityLevel(ctx, level)
	if err != nil {
		return nil, false, err
	}
	return pl, cmd.RowsAffected() > 0, nil
}

func (r *taxonomyRepository) GetDepartment(ctx context.Context, name string) (*domain.Department, error) {
	const query = `
        SELECT id, name, code, category, default_priority, created_at, updated_at
        FROM departments WHERE name=$1`
	return r.fetchDepartment(ctx, query, name)
}

func (r *taxonomyRepository) GetDepartmentByID(ctx context.Context, id string) (*domain.Department, error) {
	const query = `
        SELECT id, name, code, category, default_priority, created_at, updated_at
        FROM departments WHERE id=$1`
	return r.fetchDepartment(ctx, query, id)
}

func (r *taxonomyRepository) fetchDepartment(ctx context.Context, query string, arg any) (*domain.Department, error) {
	var dept domain.Department
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&dept.ID,
		&dept.Name,
		&dept.Code,
		&dept.Category,
		&dept.DefaultPriority,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *taxonomyRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	const query = `
        SELECT id, name, code, category, default_priority, created_at, updated_at
        FROM departments ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Code, &dept.Category, &dept.DefaultPriority, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

func (r *taxonomyRepository) GetOrCreateDepartment(ctx context.Context, dept *domain.Department) (bool, error) {
	const insert = `
        INSERT INTO departments (name, code, category, default_priority)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (name) DO NOTHING`
	cmd, err := r.db.Exec(ctx, insert, dept.Name, dept.Code, dept.Category, dept.DefaultPriority)
	if err != nil {
		return false, err
	}
	existing, err := r.GetDepartment(ctx, dept.Name)
	if err != nil {
		return false, err
	}
	*dept = *existing
	return cmd.RowsAffected() > 0, nil
}

func (r *taxonomyRepository) GetSubDepartment(ctx context.Context, name string) (*domain.SubDepartment, error) {
	const query = `
        SELECT id, name, department_id, priority_level, created_at, updated_at
        FROM sub_departments WHERE name=$1`
	return r.fetchSubDepartment(ctx, query, name)
}

func (r *taxonomyRepository) GetSubDepartmentByID(ctx context.Context, id string) (*domain.SubDepartment, error) {
	const query = `
        SELECT id, name, department_id, priority_level, created_at, updated_at
        FROM sub_departments WHERE id=$1`
	return r.fetchSubDepartment(ctx, query, id)
}

func (r *taxonomyRepository) fetchSubDepartment(ctx context.Context, query string, arg any) (*domain.SubDepartment, error) {
	var sub domain.SubDepartment
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&sub.ID,
		&sub.Name,
		&sub.DepartmentID,
		&sub.Priority,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *taxonomyRepository) ListSubDepartments(ctx context.Context, departmentID string) ([]domain.SubDepartment, error) {
	const query = `
        SELECT id, name, department_id, priority_level, created_at, updated_at
        FROM sub_departments WHERE department_id=$1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SubDepartment
	for rows.Next() {
		var sub domain.SubDepartment
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.DepartmentID, &sub.Priority, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

func (r *taxonomyRepository) GetOrCreateSubDepartment(ctx context.Context, sub *domain.SubDepartment) (bool, error) {
	const insert = `
        INSERT INTO sub_departments (name, department_id, priority_level)
        VALUES ($1,$2,$3)
        ON CONFLICT (name) DO NOTHING`
	cmd, err := r.db.Exec(ctx, insert, sub.Name, sub.DepartmentID, sub.Priority)
	if err != nil {
		return false, err
	}
	existing, err := r.GetSubDepartment(ctx, sub.Name)
	if err != nil {
		return false, err
	}
	*sub = *existing
	return cmd.RowsAffected() > 0, nil
}
