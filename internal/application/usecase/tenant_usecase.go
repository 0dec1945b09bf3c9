package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// TenantUseCase aplica reglas de negocio para tenants.
type TenantUseCase struct {
	repo repository.TenantRepository
}

func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create valida y persiste. Código repetido => ErrDuplicate.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest, actorID *int64) (*dto.TenantResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || len(code) > 50 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	t := &entity.Tenant{
		Code:        code,
		Name:        name,
		Description: in.Description,
		IsActive:    boolOr(in.IsActive, true),
		Audit:       entity.Audit{CreatedBy: actorID},
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func (uc *TenantUseCase) GetByID(ctx context.Context, id int64) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(t), nil
}

func (uc *TenantUseCase) List(ctx context.Context) ([]dto.TenantResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTenantResponse(t))
	}
	return out, nil
}

// Update aplica solo los campos presentes.
func (uc *TenantUseCase) Update(ctx context.Context, id int64, in dto.UpdateTenantRequest, actorID *int64) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	t.UpdatedBy = actorID
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func (uc *TenantUseCase) Delete(ctx context.Context, id int64, actorID *int64) error {
	return uc.repo.SoftDelete(ctx, id, actorID)
}
