package usecase

import (
	"context"
	"strings"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

// DirectoryUseCase proveedores y proyectos: las contrapartes de entradas y salidas.
type DirectoryUseCase struct {
	suppliers repository.SupplierRepository
	projects  repository.ProjectRepository
}

// NewDirectoryUseCase construye el caso de uso.
func NewDirectoryUseCase(suppliers repository.SupplierRepository, projects repository.ProjectRepository) *DirectoryUseCase {
	return &DirectoryUseCase{suppliers: suppliers, projects: projects}
}

func (uc *DirectoryUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	s := &entity.Supplier{
		Name:          name,
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Address:       strings.TrimSpace(in.Address),
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, passDomain("create supplier", err)
	}
	return toSupplierResponse(s), nil
}

func (uc *DirectoryUseCase) ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.List(ctx)
	if err != nil {
		return nil, domain.Internal("list suppliers", err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func (uc *DirectoryUseCase) CreateProject(ctx context.Context, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("project_name", "is required")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, domain.NewValidationError("end_date", "must not be before start_date")
	}
	status := in.Status
	if status == "" {
		status = "planning"
	}
	p := &entity.Project{
		Name:      name,
		Location:  strings.TrimSpace(in.Location),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    status,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, passDomain("create project", err)
	}
	return toProjectResponse(p), nil
}

func (uc *DirectoryUseCase) ListProjects(ctx context.Context) ([]dto.ProjectResponse, error) {
	list, err := uc.projects.List(ctx)
	if err != nil {
		return nil, domain.Internal("list projects", err)
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProjectResponse(p))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		SupplierID:    s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
	}
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ProjectID: p.ID,
		Name:      p.Name,
		Location:  p.Location,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
	}
}
