package entity

// Role agrupa features y menús asignables a usuarios. TenantID nil = rol global.
type Role struct {
	ID          int64
	TenantID    *int64
	Code        string // único por tenant
	Name        string
	Description *string
	IsSystem    bool
	IsActive    bool
	IsDeleted   bool
	Audit
}
