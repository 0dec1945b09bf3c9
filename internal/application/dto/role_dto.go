package dto

import "time"

type CreateRoleRequest struct {
	TenantID    *int64  `json:"tenant_id"`
	Code        string  `json:"code" validate:"required,max=50"`
	Name        string  `json:"name" validate:"required,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsSystem    bool    `json:"is_system"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type RoleResponse struct {
	ID          int64     `json:"id"`
	TenantID    *int64    `json:"tenant_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsSystem    bool      `json:"is_system"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
