package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"golang.org/x/text/cases"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo catálogo de materiales. Con u != nil opera dentro de una unidad de trabajo.
type MaterialRepo struct {
	s *Store
	u *unitOfWork
}

func (r *MaterialRepo) within(ctx context.Context, fn func(u *unitOfWork) error) error {
	if r.u != nil {
		return fn(r.u)
	}
	return r.s.autocommit(ctx, fn)
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	return r.within(ctx, func(u *unitOfWork) error {
		if err := r.checkCategory(m.CategoryID); err != nil {
			return err
		}
		id := r.s.materialSeq.Add(1)
		if err := u.lock(ctx, id); err != nil {
			return err
		}
		now := r.s.now()
		m.ID = id
		m.CreatedAt = now
		m.UpdatedAt = now
		m.ArchivedAt = nil
		u.materials[id] = cloneMaterial(m)
		return nil
	})
}

func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m := r.s.lookupMaterial(r.u, id)
	if m == nil {
		return nil, nil
	}
	return r.withCategoryName(m), nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	return r.within(ctx, func(u *unitOfWork) error {
		if err := u.lock(ctx, m.ID); err != nil {
			return err
		}
		if err := r.checkCategory(m.CategoryID); err != nil {
			return err
		}
		r.s.mu.RLock()
		current := r.s.lookupMaterial(u, m.ID)
		r.s.mu.RUnlock()
		if current == nil {
			return domain.ErrNotFound
		}
		next := cloneMaterial(m)
		next.CreatedAt = current.CreatedAt
		next.ArchivedAt = current.ArchivedAt
		next.UpdatedAt = r.s.now()
		m.UpdatedAt = next.UpdatedAt
		u.materials[m.ID] = next
		return nil
	})
}

func (r *MaterialRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	return r.within(ctx, func(u *unitOfWork) error {
		if err := u.lock(ctx, id); err != nil {
			return err
		}
		r.s.mu.RLock()
		current := r.s.lookupMaterial(u, id)
		r.s.mu.RUnlock()
		if current == nil {
			return domain.ErrNotFound
		}
		next := cloneMaterial(current)
		next.ArchivedAt = &at
		next.UpdatedAt = at
		u.materials[id] = next
		return nil
	})
}

func (r *MaterialRepo) Delete(ctx context.Context, id int64) error {
	return r.within(ctx, func(u *unitOfWork) error {
		if err := u.lock(ctx, id); err != nil {
			return err
		}
		r.s.mu.RLock()
		current := r.s.lookupMaterial(u, id)
		r.s.mu.RUnlock()
		if current == nil {
			return domain.ErrNotFound
		}
		delete(u.materials, id)
		delete(u.quantities, id)
		kept := u.appended[:0]
		for _, t := range u.appended {
			if t.MaterialID != id {
				kept = append(kept, t)
			}
		}
		u.appended = kept
		u.deleted[id] = struct{}{}
		return nil
	})
}

func (r *MaterialRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.allMaterials(r.u) {
		if m.CategoryID != nil && *m.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *MaterialRepo) ListWithStock(ctx context.Context, f repository.MaterialFilter) ([]repository.MaterialStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Search))

	out := make([]repository.MaterialStock, 0)
	for _, m := range r.s.allMaterials(r.u) {
		if m.Archived() && !f.IncludeArchived {
			continue
		}
		if f.CategoryID != nil && (m.CategoryID == nil || *m.CategoryID != *f.CategoryID) {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(m.Name), needle) &&
			!strings.Contains(fold.String(m.Description), needle) {
			continue
		}
		out = append(out, repository.MaterialStock{
			Material: *r.withCategoryName(m),
			Quantity: r.s.quantityOf(r.u, m.ID),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Material.ID < out[j].Material.ID })
	return out, nil
}

func (r *MaterialRepo) GetWithStock(ctx context.Context, id int64) (*repository.MaterialStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m := r.s.lookupMaterial(r.u, id)
	if m == nil {
		return nil, nil
	}
	return &repository.MaterialStock{
		Material: *r.withCategoryName(m),
		Quantity: r.s.quantityOf(r.u, id),
	}, nil
}

// withCategoryName copia el material y resuelve el nombre de la categoría. Requiere s.mu.
func (r *MaterialRepo) withCategoryName(m *entity.Material) *entity.Material {
	cp := cloneMaterial(m)
	cp.CategoryName = ""
	if cp.CategoryID != nil {
		if c, ok := r.s.categories[*cp.CategoryID]; ok {
			cp.CategoryName = c.Name
		}
	}
	return cp
}

// checkCategory equivale a la FK materials.category_id.
func (r *MaterialRepo) checkCategory(categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.categories[*categoryID]; !ok {
		return fmt.Errorf("category %d: %w", *categoryID, domain.ErrConflict)
	}
	return nil
}
