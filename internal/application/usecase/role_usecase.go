package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// RoleUseCase aplica reglas de negocio para roles. El código es único por tenant.
type RoleUseCase struct {
	repo repository.RoleRepository
}

func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest, actorID *int64) (*dto.RoleResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || len(code) > 50 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, in.TenantID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	r := &entity.Role{
		TenantID:    in.TenantID,
		Code:        code,
		Name:        name,
		Description: in.Description,
		IsSystem:    in.IsSystem,
		IsActive:    boolOr(in.IsActive, true),
		Audit:       entity.Audit{CreatedBy: actorID},
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return ToRoleResponse(r), nil
}

func (uc *RoleUseCase) GetByID(ctx context.Context, id int64) (*dto.RoleResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return ToRoleResponse(r), nil
}

// Exists usado por el router RBAC antes de reemplazar asignaciones.
func (uc *RoleUseCase) Exists(ctx context.Context, id int64) (bool, error) {
	r, err := uc.repo.GetByID(ctx, id)
	return r != nil, err
}

// List tenantID nil => todos; con tenant => los del tenant más los globales.
func (uc *RoleUseCase) List(ctx context.Context, tenantID *int64) ([]dto.RoleResponse, error) {
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *ToRoleResponse(r))
	}
	return out, nil
}

func (uc *RoleUseCase) Update(ctx context.Context, id int64, in dto.UpdateRoleRequest, actorID *int64) (*dto.RoleResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		r.Description = in.Description
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	r.UpdatedBy = actorID
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return ToRoleResponse(r), nil
}

func (uc *RoleUseCase) Delete(ctx context.Context, id int64, actorID *int64) error {
	return uc.repo.SoftDelete(ctx, id, actorID)
}
