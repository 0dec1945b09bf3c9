package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// MenuUseCase CRUD de menús con la regla de jerarquía de dos niveles.
type MenuUseCase struct {
	repo repository.MenuRepository
}

func NewMenuUseCase(repo repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Create exige: nivel 1 sin padre; nivel 2 con un padre existente de nivel 1.
func (uc *MenuUseCase) Create(ctx context.Context, in dto.CreateMenuRequest, actorID *int64) (*dto.MenuResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Level {
	case entity.MenuLevelRoot:
		if in.ParentID != nil {
			return nil, domain.ErrInvalidInput
		}
	case entity.MenuLevelChild:
		if in.ParentID == nil {
			return nil, domain.ErrInvalidInput
		}
		parent, err := uc.repo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.Level != entity.MenuLevelRoot {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	m := &entity.Menu{
		TenantID:  in.TenantID,
		ParentID:  in.ParentID,
		Name:      name,
		Path:      in.Path,
		Icon:      in.Icon,
		SortOrder: in.SortOrder,
		Level:     in.Level,
		IsActive:  boolOr(in.IsActive, true),
		Audit:     entity.Audit{CreatedBy: actorID},
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return ToMenuResponse(m), nil
}

func (uc *MenuUseCase) GetByID(ctx context.Context, id int64) (*dto.MenuResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return ToMenuResponse(m), nil
}

// MissingIDs devuelve los ids de menú que no existen (o están borrados).
func (uc *MenuUseCase) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	missing := make([]int64, 0)
	for _, id := range ids {
		m, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (uc *MenuUseCase) List(ctx context.Context, tenantID *int64) ([]dto.MenuResponse, error) {
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMenuResponse(m))
	}
	return out, nil
}

// Update no permite mover el menú en la jerarquía (nivel y padre son fijos).
func (uc *MenuUseCase) Update(ctx context.Context, id int64, in dto.UpdateMenuRequest, actorID *int64) (*dto.MenuResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Path != nil {
		m.Path = in.Path
	}
	if in.Icon != nil {
		m.Icon = in.Icon
	}
	if in.SortOrder != nil {
		m.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedBy = actorID
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return ToMenuResponse(m), nil
}

// Delete no borra en cascada los hijos; quedan huérfanos y el árbol los descarta.
func (uc *MenuUseCase) Delete(ctx context.Context, id int64, actorID *int64) error {
	return uc.repo.SoftDelete(ctx, id, actorID)
}
