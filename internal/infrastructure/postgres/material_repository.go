package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

var materialColumns = []string{
	"m.material_id", "m.material_name", "m.description", "m.unit", "m.category_id",
	"COALESCE(c.category_name, '')", "m.min_stock_level", "m.created_at", "m.updated_at", "m.archived_at",
}

func (r *MaterialRepo) selectMaterials(extra ...string) sq.SelectBuilder {
	return psql.Select(append(append([]string{}, materialColumns...), extra...)...).
		From("materials m").
		LeftJoin("material_categories c ON c.category_id = m.category_id")
}

func scanMaterial(row rowScanner, m *entity.Material, extra ...any) error {
	dest := []any{
		&m.ID, &m.Name, &m.Description, &m.Unit, &m.CategoryID,
		&m.CategoryName, &m.MinStockLevel, &m.CreatedAt, &m.UpdatedAt, &m.ArchivedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	sqlStr, args, err := psql.Insert("materials").
		Columns("material_name", "description", "unit", "category_id", "min_stock_level").
		Values(m.Name, m.Description, m.Unit, m.CategoryID, m.MinStockLevel).
		Suffix("RETURNING material_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert material: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	sqlStr, args, err := r.selectMaterials().Where(sq.Eq{"m.material_id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var m entity.Material
	if err := scanMaterial(r.q.QueryRow(ctx, sqlStr, args...), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	sqlStr, args, err := psql.Update("materials").
		SetMap(map[string]any{
			"material_name":   m.Name,
			"description":     m.Description,
			"unit":            m.Unit,
			"category_id":     m.CategoryID,
			"min_stock_level": m.MinStockLevel,
			"updated_at":      sq.Expr("now()"),
		}).
		Where(sq.Eq{"material_id": m.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&m.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrNotFound
		case isForeignKeyViolation(err):
			return fmt.Errorf("update material: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	sqlStr, args, err := psql.Update("materials").
		Set("archived_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"material_id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("archive material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := psql.Delete("materials").Where(sq.Eq{"material_id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").From("materials").Where(sq.Eq{"category_id": categoryID}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count materials: %w", err)
	}
	return n, nil
}

func (r *MaterialRepo) ListWithStock(ctx context.Context, f repository.MaterialFilter) ([]repository.MaterialStock, error) {
	qb := r.selectMaterials("COALESCE(i.quantity, 0)").
		LeftJoin("inventory i ON i.material_id = m.material_id").
		OrderBy("m.material_id")
	if !f.IncludeArchived {
		qb = qb.Where(sq.Eq{"m.archived_at": nil})
	}
	if f.CategoryID != nil {
		qb = qb.Where(sq.Eq{"m.category_id": *f.CategoryID})
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		qb = qb.Where(sq.Or{sq.ILike{"m.material_name": p}, sq.ILike{"m.description": p}})
	}
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	out := make([]repository.MaterialStock, 0)
	for rows.Next() {
		var ms repository.MaterialStock
		if err := scanMaterial(rows, &ms.Material, &ms.Quantity); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}

func (r *MaterialRepo) GetWithStock(ctx context.Context, id int64) (*repository.MaterialStock, error) {
	sqlStr, args, err := r.selectMaterials("COALESCE(i.quantity, 0)").
		LeftJoin("inventory i ON i.material_id = m.material_id").
		Where(sq.Eq{"m.material_id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var ms repository.MaterialStock
	if err := scanMaterial(r.q.QueryRow(ctx, sqlStr, args...), &ms.Material, &ms.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &ms, nil
}
