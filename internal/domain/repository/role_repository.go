package repository

import (
	"context"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (DIP).
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	// GetByCode busca por (tenant, code); tenantID nil busca entre los roles globales.
	GetByCode(ctx context.Context, tenantID *int64, code string) (*entity.Role, error)
	// List con tenantID != nil devuelve los roles del tenant más los globales.
	List(ctx context.Context, tenantID *int64) ([]*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	SoftDelete(ctx context.Context, id int64, deletedBy *int64) error
}
