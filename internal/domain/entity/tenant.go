package entity

// Tenant representa una organización aislada (multi-tenant). Nunca se borra físicamente.
type Tenant struct {
	ID          int64
	Code        string // único
	Name        string
	Description *string
	IsActive    bool
	IsDeleted   bool
	Audit
}
