package repository

import (
	"context"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
}
