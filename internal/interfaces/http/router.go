package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Accesos-api/internal/application/auth"
	"github.com/jhoicas/Accesos-api/internal/application/rbac"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	TenantUC  *usecase.TenantUseCase
	RoleUC    *usecase.RoleUseCase
	FeatureUC *usecase.FeatureUseCase
	MenuUC    *usecase.MenuUseCase
	RBAC      *rbac.Service
	Users     SessionUsers
	Revoked   repository.TokenRevocationStore
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.Users, deps.Revoked)
	requireAdmin := RequireAdmin()

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)

	userHandler := NewUserHandler(deps.UserUC)

	// Perfil propio (cualquier usuario autenticado)
	profile := api.Group("/profile", requireAuth)
	profile.Get("/", userHandler.GetProfile)
	profile.Put("/", userHandler.UpdateProfile)

	// Users: PUT /:id lo puede usar el propio usuario; el resto es administración.
	users := api.Group("/users", requireAuth)
	users.Put("/:id", userHandler.Update)
	users.Get("/", requireAdmin, userHandler.List)
	users.Post("/", requireAdmin, userHandler.Create)
	users.Get("/:id", requireAdmin, userHandler.GetByID)
	users.Put("/:id/password", requireAdmin, userHandler.UpdatePassword)
	users.Delete("/:id", requireAdmin, userHandler.Delete)

	// Catálogos (administración)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants := api.Group("/tenants", requireAuth, requireAdmin)
	tenants.Get("/", tenantHandler.List)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Put("/:id", tenantHandler.Update)
	tenants.Delete("/:id", tenantHandler.Delete)

	roleHandler := NewRoleHandler(deps.RoleUC)
	roles := api.Group("/roles", requireAuth, requireAdmin)
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	featureHandler := NewFeatureHandler(deps.FeatureUC)
	features := api.Group("/features", requireAuth, requireAdmin)
	features.Get("/", featureHandler.List)
	features.Post("/", featureHandler.Create)
	features.Get("/:id", featureHandler.GetByID)
	features.Put("/:id", featureHandler.Update)
	features.Delete("/:id", featureHandler.Delete)

	menuHandler := NewMenuHandler(deps.MenuUC)
	menus := api.Group("/menus", requireAuth, requireAdmin)
	menus.Get("/", menuHandler.List)
	menus.Post("/", menuHandler.Create)
	menus.Get("/:id", menuHandler.GetByID)
	menus.Put("/:id", menuHandler.Update)
	menus.Delete("/:id", menuHandler.Delete)

	// Asignaciones RBAC (administración)
	rbacHandler := NewRBACHandler(deps.RBAC, deps.UserUC, deps.RoleUC, deps.MenuUC, deps.FeatureUC)
	rbacGroup := api.Group("/rbac", requireAuth, requireAdmin)
	rbacGroup.Get("/users/:id/roles", rbacHandler.GetUserRoles)
	rbacGroup.Post("/users/:id/roles", rbacHandler.SetUserRoles)
	rbacGroup.Get("/users/:id/permissions", rbacHandler.GetUserPermissions)
	rbacGroup.Get("/users/:id/menus", rbacHandler.GetUserMenus)
	rbacGroup.Get("/roles/:id/menus", rbacHandler.GetRoleMenus)
	rbacGroup.Post("/roles/:id/menus", rbacHandler.SetRoleMenus)
	rbacGroup.Get("/roles/:id/features", rbacHandler.GetRoleFeatures)
	rbacGroup.Post("/roles/:id/features", rbacHandler.SetRoleFeatures)
}
