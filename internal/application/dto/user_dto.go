package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	FullName    string  `json:"full_name" validate:"required,min=2,max=200"`
	Password    string  `json:"password" validate:"required,min=8"`
	TenantID    *int64  `json:"tenant_id"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Role        string  `json:"role" validate:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
}

// UpdateUserRequest actualización parcial; los campos nil no se tocan.
// TenantID, ClearTenant, IsActive y Role solo los puede cambiar un admin.
// ClearTenant deja tenant_id = null (usuario de organización); no se combina con TenantID.
type UpdateUserRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	IsActive    *bool   `json:"is_active"`
	TenantID    *int64  `json:"tenant_id"`
	ClearTenant bool    `json:"clear_tenant"`
	Role        *string `json:"role"`
}

// UpdatePasswordRequest cambio de contraseña iniciado por un admin.
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64      `json:"id"`
	TenantID    *int64     `json:"tenant_id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	PhoneNumber *string    `json:"phone_number"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
