package entity

import "time"

// Audit metadatos comunes a todas las entidades primarias (quién y cuándo).
// Los *By son IDs de usuario; nil cuando la acción la ejecuta el sistema.
type Audit struct {
	CreatedAt time.Time
	CreatedBy *int64
	UpdatedAt *time.Time
	UpdatedBy *int64
	DeletedAt *time.Time
	DeletedBy *int64
}
