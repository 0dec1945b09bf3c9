package dto

// ProfileResponse datos visibles del perfil propio.
type ProfileResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UpdateProfileRequest el usuario solo puede cambiar su nombre.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=200"`
}
