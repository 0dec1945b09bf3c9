package dto

import "time"

// CreateMenuRequest nivel 1 sin padre, nivel 2 con padre de nivel 1.
type CreateMenuRequest struct {
	TenantID  *int64  `json:"tenant_id"`
	ParentID  *int64  `json:"parent_id"`
	Name      string  `json:"name" validate:"required,max=150"`
	Path      *string `json:"path" validate:"omitempty,max=300"`
	Icon      *string `json:"icon" validate:"omitempty,max=100"`
	SortOrder int     `json:"sort_order"`
	Level     int     `json:"level" validate:"required,oneof=1 2"`
	IsActive  *bool   `json:"is_active"`
}

type UpdateMenuRequest struct {
	Name      *string `json:"name"`
	Path      *string `json:"path"`
	Icon      *string `json:"icon"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

type MenuResponse struct {
	ID        int64     `json:"id"`
	TenantID  *int64    `json:"tenant_id"`
	ParentID  *int64    `json:"parent_id"`
	Name      string    `json:"name"`
	Path      *string   `json:"path"`
	Icon      *string   `json:"icon"`
	SortOrder int       `json:"sort_order"`
	Level     int       `json:"level"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuNodeDTO nodo del árbol de navegación. Children nunca es null.
type MenuNodeDTO struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Path     *string       `json:"path"`
	Icon     *string       `json:"icon"`
	Children []MenuNodeDTO `json:"children"`
}
