package memory

import (
	"context"
	"sort"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.ProjectRepository  = (*ProjectRepo)(nil)
)

// CategoryRepo categorías; nombre único.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c.Name, 0) {
		return domain.ErrDuplicate
	}
	c.ID = r.s.categorySeq.Add(1)
	c.CreatedAt = r.s.now()
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return domain.ErrDuplicate
	}
	current.Name = c.Name
	current.Description = c.Description
	c.CreatedAt = current.CreatedAt
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.materials {
		if m.CategoryID != nil && *m.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// nameTaken requiere s.mu.
func (r *CategoryRepo) nameTaken(name string, exceptID int64) bool {
	for _, c := range r.s.categories {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}

// SupplierRepo directorio de proveedores.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(ctx context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp.ID = r.s.supplierSeq.Add(1)
	sp.CreatedAt = r.s.now()
	cp := *sp
	r.s.suppliers[sp.ID] = &cp
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		cp := *sp
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ProjectRepo directorio de proyectos.
type ProjectRepo struct{ s *Store }

func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.projectSeq.Add(1)
	p.CreatedAt = r.s.now()
	cp := *p
	r.s.projects[p.ID] = &cp
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
