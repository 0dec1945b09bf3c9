package usecase

import (
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/rbac"
)

// Actor quien ejecuta la operación (usuario vigente de la sesión).
type Actor struct {
	ID       int64
	TenantID *int64
	Role     entity.LegacyRole
}

// IsAdmin ADMIN o SUPER_ADMIN legacy.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.LegacyRoleAdmin || a.Role == entity.LegacyRoleSuperAdmin
}

// Access nivel por rol legacy y tenant; los roles RBAC no habilitan administración de usuarios.
func (a Actor) Access() rbac.AccessLevel {
	return rbac.DetermineAccess(a.Role, a.TenantID, nil)
}

// canManage informa si el actor puede dejar (o tocar) una cuenta con ese rol y tenant.
// SUPER_ADMIN solo lo maneja otro SUPER_ADMIN; acceso de sistema solo otro actor de sistema.
func (a Actor) canManage(role entity.LegacyRole, tenantID *int64) bool {
	if role == entity.LegacyRoleSuperAdmin && a.Role != entity.LegacyRoleSuperAdmin {
		return false
	}
	if rbac.DetermineAccess(role, tenantID, nil).IsSuperAdmin() && !a.Access().IsSuperAdmin() {
		return false
	}
	return true
}

// Ref puntero al ID para las columnas de auditoría.
func (a Actor) Ref() *int64 {
	if a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}
