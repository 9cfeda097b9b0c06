package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías de material sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) selectCategories() sq.SelectBuilder {
	return psql.Select("category_id", "category_name", "description", "created_at").From("material_categories")
}

func (r *CategoryRepo) getOne(ctx context.Context, qb sq.SelectBuilder) (*entity.Category, error) {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	var c entity.Category
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	sqlStr, args, err := psql.Insert("material_categories").
		Columns("category_name", "description").
		Values(c.Name, c.Description).
		Suffix("RETURNING category_id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getOne(ctx, r.selectCategories().Where(sq.Eq{"category_id": id}))
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, r.selectCategories().Where(sq.Eq{"category_name": name}))
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	sqlStr, args, err := psql.Update("material_categories").
		Set("category_name", c.Name).
		Set("description", c.Description).
		Where(sq.Eq{"category_id": c.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	sqlStr, args, err := r.selectCategories().OrderBy("category_name", "category_id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Delete la FK ON DELETE RESTRICT rechaza el borrado si algún material la usa.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := psql.Delete("material_categories").Where(sq.Eq{"category_id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
