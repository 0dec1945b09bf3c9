package rbac

import (
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"golang.org/x/text/cases"
)

// SystemAdminRoleCode código de rol reservado que otorga acceso total.
// Se compara sin distinguir mayúsculas (case folding Unicode).
const SystemAdminRoleCode = "SYSTEM_ADMIN"

// AccessLevel nivel de acceso efectivo de un usuario.
type AccessLevel int

const (
	RegularUser AccessLevel = iota
	TenantAdmin
	SystemAdmin
)

// String implementa fmt.Stringer (útil en logs y labels de métricas).
func (l AccessLevel) String() string {
	switch l {
	case SystemAdmin:
		return "system_admin"
	case TenantAdmin:
		return "tenant_admin"
	default:
		return "regular_user"
	}
}

// IsSuperAdmin informa si el nivel otorga acceso total a features y menús activos.
func (l AccessLevel) IsSuperAdmin() bool {
	return l == SystemAdmin
}

// DetermineAccess resuelve la precedencia entre el rol legacy, el tenant y los códigos de rol RBAC.
//
//   - SUPER_ADMIN legacy                    => SystemAdmin
//   - ADMIN legacy sin tenant               => SystemAdmin
//   - algún código == SYSTEM_ADMIN (caseless) => SystemAdmin
//   - ADMIN legacy con tenant               => TenantAdmin
//   - resto                                 => RegularUser
func DetermineAccess(legacy entity.LegacyRole, tenantID *int64, roleCodes []string) AccessLevel {
	if legacy == entity.LegacyRoleSuperAdmin {
		return SystemAdmin
	}
	if legacy == entity.LegacyRoleAdmin && tenantID == nil {
		return SystemAdmin
	}
	if hasSystemAdminCode(roleCodes) {
		return SystemAdmin
	}
	if legacy == entity.LegacyRoleAdmin {
		return TenantAdmin
	}
	return RegularUser
}

func hasSystemAdminCode(codes []string) bool {
	fold := cases.Fold()
	want := fold.String(SystemAdminRoleCode)
	for _, c := range codes {
		if fold.String(c) == want {
			return true
		}
	}
	return false
}

// RoleCodes extrae los códigos de una lista de roles.
func RoleCodes(roles []entity.Role) []string {
	codes := make([]string, 0, len(roles))
	for _, r := range roles {
		codes = append(codes, r.Code)
	}
	return codes
}
