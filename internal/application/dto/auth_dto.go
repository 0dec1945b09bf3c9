package dto

// RegisterRequest entrada para registro público. El rol lo decide el servidor.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	FullName    string  `json:"full_name" validate:"required,min=2,max=200"`
	Password    string  `json:"password" validate:"required,min=8"`
	TenantID    *int64  `json:"tenant_id"`
	PhoneNumber *string `json:"phone_number"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token más el contexto RBAC resuelto en el momento del login.
type LoginResponse struct {
	Token       string        `json:"token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int           `json:"expires_in"` // segundos
	User        UserResponse  `json:"user"`
	Roles       []string      `json:"roles"`
	Permissions []string      `json:"permissions"`
	Menus       []MenuNodeDTO `json:"menus"`
}

// MeResponse usuario autenticado con su nivel de acceso.
type MeResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	TenantID    *int64 `json:"tenant_id"`
	AccessLevel string `json:"access_level"`
}
