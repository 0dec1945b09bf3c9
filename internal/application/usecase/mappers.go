package usecase

import (
	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
)

func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:          t.ID,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

func ToRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		TenantID:    r.TenantID,
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

func ToFeatureResponse(f *entity.Feature) *dto.FeatureResponse {
	return &dto.FeatureResponse{
		ID:          f.ID,
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
	}
}

func ToMenuResponse(m *entity.Menu) *dto.MenuResponse {
	return &dto.MenuResponse{
		ID:        m.ID,
		TenantID:  m.TenantID,
		ParentID:  m.ParentID,
		Name:      m.Name,
		Path:      m.Path,
		Icon:      m.Icon,
		SortOrder: m.SortOrder,
		Level:     m.Level,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
