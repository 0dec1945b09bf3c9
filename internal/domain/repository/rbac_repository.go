package repository

import (
	"context"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
)

// RBACRepository puerto de lectura para la resolución de permisos y menús.
// Todas las consultas excluyen filas con is_deleted = true.
type RBACRepository interface {
	// RolesByUser roles asignados vía user_roles. No filtra roles.is_active.
	RolesByUser(ctx context.Context, userID int64) ([]entity.Role, error)
	// ActiveFeatureCodes códigos de todas las features activas.
	ActiveFeatureCodes(ctx context.Context) ([]string, error)
	// FeatureCodesByRoles códigos distintos de features activas alcanzables por los roles.
	FeatureCodesByRoles(ctx context.Context, roleIDs []int64) ([]string, error)
	// ActiveMenus todos los menús activos.
	ActiveMenus(ctx context.Context) ([]entity.Menu, error)
	// MenusByRoles menús activos alcanzables por los roles, sin duplicados.
	MenusByRoles(ctx context.Context, roleIDs []int64) ([]entity.Menu, error)

	FeaturesByRole(ctx context.Context, roleID int64) ([]entity.Feature, error)
	MenusByRole(ctx context.Context, roleID int64) ([]entity.Menu, error)
}

// AssignmentRepository puerto de escritura de las tablas de asociación.
// Cada Replace* borra las filas del dueño e inserta una por destino; debe usarse dentro de una tx.
type AssignmentRepository interface {
	ReplaceUserRoles(ctx context.Context, userID int64, roleIDs []int64, assignedBy *int64) error
	ReplaceRoleMenus(ctx context.Context, roleID int64, menuIDs []int64, grantedBy *int64) error
	ReplaceRoleFeatures(ctx context.Context, roleID int64, featureIDs []int64, grantedBy *int64) error
}
