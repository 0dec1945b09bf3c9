package dto

import "time"

type CreateFeatureRequest struct {
	Code        string  `json:"code" validate:"required,max=100"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateFeatureRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

type FeatureResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
