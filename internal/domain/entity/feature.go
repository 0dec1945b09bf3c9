package entity

// Feature unidad atómica de permiso, identificada por un código global único (ej. USER_VIEW).
type Feature struct {
	ID          int64
	Code        string
	Name        string
	Description *string
	Category    *string // ej. USER, ORDER
	IsActive    bool
	IsDeleted   bool
	Audit
}
