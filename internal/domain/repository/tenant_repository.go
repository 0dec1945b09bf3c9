package repository

import (
	"context"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// Las lecturas excluyen filas con borrado lógico; GetBy* devuelve (nil, nil) si no existe.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id int64) (*entity.Tenant, error)
	GetByCode(ctx context.Context, code string) (*entity.Tenant, error)
	List(ctx context.Context) ([]*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	SoftDelete(ctx context.Context, id int64, deletedBy *int64) error
}
