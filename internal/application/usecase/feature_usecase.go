package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// FeatureUseCase aplica reglas de negocio para features (permisos atómicos).
type FeatureUseCase struct {
	repo repository.FeatureRepository
}

func NewFeatureUseCase(repo repository.FeatureRepository) *FeatureUseCase {
	return &FeatureUseCase{repo: repo}
}

func (uc *FeatureUseCase) Create(ctx context.Context, in dto.CreateFeatureRequest, actorID *int64) (*dto.FeatureResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || len(code) > 100 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	f := &entity.Feature{
		Code:        code,
		Name:        name,
		Description: in.Description,
		Category:    in.Category,
		IsActive:    boolOr(in.IsActive, true),
		Audit:       entity.Audit{CreatedBy: actorID},
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return ToFeatureResponse(f), nil
}

func (uc *FeatureUseCase) GetByID(ctx context.Context, id int64) (*dto.FeatureResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return ToFeatureResponse(f), nil
}

// MissingIDs devuelve los ids que no existen (o están borrados), en el orden recibido.
func (uc *FeatureUseCase) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	missing := make([]int64, 0)
	for _, id := range ids {
		f, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if f == nil {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (uc *FeatureUseCase) List(ctx context.Context) ([]dto.FeatureResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeatureResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *ToFeatureResponse(f))
	}
	return out, nil
}

func (uc *FeatureUseCase) Update(ctx context.Context, id int64, in dto.UpdateFeatureRequest, actorID *int64) (*dto.FeatureResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		f.Description = in.Description
	}
	if in.Category != nil {
		f.Category = in.Category
	}
	if in.IsActive != nil {
		f.IsActive = *in.IsActive
	}
	f.UpdatedBy = actorID
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return ToFeatureResponse(f), nil
}

func (uc *FeatureUseCase) Delete(ctx context.Context, id int64, actorID *int64) error {
	return uc.repo.SoftDelete(ctx, id, actorID)
}
