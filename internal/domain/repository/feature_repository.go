package repository

import (
	"context"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
)

// FeatureRepository define el puerto de persistencia para Feature (DIP).
type FeatureRepository interface {
	Create(ctx context.Context, feature *entity.Feature) error
	GetByID(ctx context.Context, id int64) (*entity.Feature, error)
	GetByCode(ctx context.Context, code string) (*entity.Feature, error)
	List(ctx context.Context) ([]*entity.Feature, error)
	Update(ctx context.Context, feature *entity.Feature) error
	SoftDelete(ctx context.Context, id int64, deletedBy *int64) error
}
