package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
	"github.com/jhoicas/Accesos-api/pkg/jwt"
)

// Locals keys cargadas por AuthMiddleware.
const (
	LocalUserID   = "user_id"
	LocalTenantID = "tenant_id"
	LocalRole     = "role"
	LocalClaims   = "claims"
)

// SessionUsers carga el usuario vigente del token. repository.UserRepository la cumple.
type SessionUsers interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados (logout) y recarga
// el usuario en cada petición: borrado, inactivo o inexistente => 401. Rol y tenant en
// c.Locals salen de la fila actual, no de los claims.
// revoked puede ser nil: en ese caso no se consulta la lista de revocados.
func AuthMiddleware(jwtSecret string, users SessionUsers, revoked repository.TokenRevocationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REVOCATION_CHECK_FAILED", Message: "no se pudo validar el token, intente más tarde"})
			}
			if isRevoked {
				return respondError(c, domain.ErrTokenRevoked)
			}
		}
		user, err := users.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_CHECK_FAILED", Message: "no se pudo validar la sesión, intente más tarde"})
		}
		if user == nil || user.IsDeleted || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "usuario inexistente o inactivo"})
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalTenantID, user.TenantID)
		c.Locals(LocalRole, string(user.Role))
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireRole autoriza solo si el rol legacy vigente del usuario está en roles (sin distinguir mayúsculas).
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el usuario no tiene rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permisos insuficientes"})
	}
}

// RequireAdmin atajo para rutas de administración (ADMIN o SUPER_ADMIN).
func RequireAdmin() fiber.Handler {
	return RequireRole(string(entity.LegacyRoleAdmin), string(entity.LegacyRoleSuperAdmin))
}

// GetUserID devuelve el UserID del contexto (0 si no hay sesión).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetTenantID devuelve el TenantID vigente del usuario (nil = usuario de organización).
func GetTenantID(c *fiber.Ctx) *int64 {
	id, _ := c.Locals(LocalTenantID).(*int64)
	return id
}

// GetRole devuelve el rol legacy vigente del usuario.
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}

// GetClaims devuelve los claims completos (jti y expiración incluidos).
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

func actorFrom(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{ID: GetUserID(c), TenantID: GetTenantID(c), Role: entity.ParseLegacyRole(GetRole(c))}
}
