package entity

import "strings"

// LegacyRole rol simple heredado guardado en la columna users.role.
// Convive con las asignaciones RBAC (user_roles); ver rbac.DetermineAccess.
type LegacyRole string

// Roles legacy válidos para User.
const (
	LegacyRoleUser       LegacyRole = "USER"
	LegacyRoleAdmin      LegacyRole = "ADMIN"
	LegacyRoleSuperAdmin LegacyRole = "SUPER_ADMIN"
)

// ParseLegacyRole normaliza el valor persistido. Valores desconocidos caen en USER.
func ParseLegacyRole(s string) LegacyRole {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(LegacyRoleSuperAdmin):
		return LegacyRoleSuperAdmin
	case string(LegacyRoleAdmin):
		return LegacyRoleAdmin
	default:
		return LegacyRoleUser
	}
}

// IsValid informa si r es uno de los roles legacy conocidos (sin normalizar).
func (r LegacyRole) IsValid() bool {
	switch r {
	case LegacyRoleUser, LegacyRoleAdmin, LegacyRoleSuperAdmin:
		return true
	}
	return false
}

// User representa un usuario del sistema. TenantID nil = usuario de organización (sistema).
type User struct {
	ID           int64
	TenantID     *int64
	Email        string // único
	FullName     string
	PasswordHash string // bcrypt hash
	PhoneNumber  *string
	Role         LegacyRole
	IsActive     bool
	IsDeleted    bool
	Audit
}
