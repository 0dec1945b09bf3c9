package entity

// Niveles permitidos por el CHECK de la tabla menus.
const (
	MenuLevelRoot  = 1
	MenuLevelChild = 2
)

// Menu entrada de navegación en una jerarquía de dos niveles.
// Nivel 1 => ParentID nil; nivel 2 => ParentID apunta a un menú de nivel 1.
type Menu struct {
	ID        int64
	TenantID  *int64
	ParentID  *int64
	Name      string
	Path      *string
	Icon      *string
	SortOrder int
	Level     int
	IsActive  bool
	IsDeleted bool
	Audit
}

// VisibleFor aplica la regla de tenant: global o del mismo tenant del usuario.
func (m Menu) VisibleFor(userTenantID *int64) bool {
	if m.TenantID == nil {
		return true
	}
	return userTenantID != nil && *m.TenantID == *userTenantID
}
