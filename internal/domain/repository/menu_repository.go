package repository

import (
	"context"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
)

// MenuRepository define el puerto de persistencia para Menu (DIP).
type MenuRepository interface {
	Create(ctx context.Context, menu *entity.Menu) error
	GetByID(ctx context.Context, id int64) (*entity.Menu, error)
	// List ordena por (sort_order, id); con tenantID != nil incluye también los globales.
	List(ctx context.Context, tenantID *int64) ([]*entity.Menu, error)
	Update(ctx context.Context, menu *entity.Menu) error
	SoftDelete(ctx context.Context, id int64, deletedBy *int64) error
}
