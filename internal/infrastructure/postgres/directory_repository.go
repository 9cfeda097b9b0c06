package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.ProjectRepository  = (*ProjectRepo)(nil)
)

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

var supplierColumns = []string{"supplier_id", "supplier_name", "contact_person", "phone", "email", "address", "created_at"}

func scanSupplier(row rowScanner, s *entity.Supplier) error {
	return row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Phone, &s.Email, &s.Address, &s.CreatedAt)
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	sqlStr, args, err := psql.Insert("suppliers").
		Columns("supplier_name", "contact_person", "phone", "email", "address").
		Values(s.Name, s.ContactPerson, s.Phone, s.Email, s.Address).
		Suffix("RETURNING supplier_id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	sqlStr, args, err := psql.Select(supplierColumns...).From("suppliers").Where(sq.Eq{"supplier_id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var s entity.Supplier
	if err := scanSupplier(r.q.QueryRow(ctx, sqlStr, args...), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	sqlStr, args, err := psql.Select(supplierColumns...).From("suppliers").OrderBy("supplier_name", "supplier_id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Supplier, 0)
	for rows.Next() {
		var s entity.Supplier
		if err := scanSupplier(rows, &s); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// ProjectRepo proyectos (obras) sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

var projectColumns = []string{"project_id", "project_name", "location", "start_date", "end_date", "status", "created_at"}

func scanProject(row rowScanner, p *entity.Project) error {
	return row.Scan(&p.ID, &p.Name, &p.Location, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt)
}

func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	sqlStr, args, err := psql.Insert("projects").
		Columns("project_name", "location", "start_date", "end_date", "status").
		Values(p.Name, p.Location, p.StartDate, p.EndDate, p.Status).
		Suffix("RETURNING project_id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	sqlStr, args, err := psql.Select(projectColumns...).From("projects").Where(sq.Eq{"project_id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var p entity.Project
	if err := scanProject(r.q.QueryRow(ctx, sqlStr, args...), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	sqlStr, args, err := psql.Select(projectColumns...).From("projects").OrderBy("project_name", "project_id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Project, 0)
	for rows.Next() {
		var p entity.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
