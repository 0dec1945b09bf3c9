package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Accesos-api/internal/application/auth"
	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/rbac"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
)

// RBACHandler consulta y reemplazo de asignaciones usuario→rol y rol→menú/feature.
type RBACHandler struct {
	svc       *rbac.Service
	userUC    *usecase.UserUseCase
	roleUC    *usecase.RoleUseCase
	menuUC    *usecase.MenuUseCase
	featureUC *usecase.FeatureUseCase
}

func NewRBACHandler(svc *rbac.Service, userUC *usecase.UserUseCase, roleUC *usecase.RoleUseCase,
	menuUC *usecase.MenuUseCase, featureUC *usecase.FeatureUseCase) *RBACHandler {
	return &RBACHandler{svc: svc, userUC: userUC, roleUC: roleUC, menuUC: menuUC, featureUC: featureUC}
}

// GetUserRoles godoc
// @Summary      Roles asignados a un usuario
// @Tags         rbac
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {array}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rbac/users/{id}/roles [get]
func (h *RBACHandler) GetUserRoles(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if _, err := h.userUC.GetEntity(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	roles, err := h.svc.ResolveRoles(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, *usecase.ToRoleResponse(&roles[i]))
	}
	return c.JSON(out)
}

// SetUserRoles godoc
// @Summary      Reemplazar roles de un usuario
// @Description  El conjunto enviado sustituye al anterior. Lista vacía deja al usuario sin roles.
// @Tags         rbac
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del usuario"
// @Param        body  body  dto.AssignRolesRequest  true  "IDs de rol"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rbac/users/{id}/roles [post]
func (h *RBACHandler) SetUserRoles(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.AssignRolesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.userUC.GetEntity(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	if err := h.svc.SetUserRoles(c.UserContext(), id, in.RoleIDs, actorFrom(c).Ref()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "roles asignados"})
}

// GetUserPermissions godoc
// @Summary      Permisos efectivos de un usuario
// @Tags         rbac
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {array}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rbac/users/{id}/permissions [get]
func (h *RBACHandler) GetUserPermissions(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	user, err := h.userUC.GetEntity(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	perms, err := h.svc.ResolvePermissions(c.UserContext(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(perms)
}

// GetUserMenus godoc
// @Summary      Árbol de menús visible para un usuario
// @Tags         rbac
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {array}  dto.MenuNodeDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rbac/users/{id}/menus [get]
func (h *RBACHandler) GetUserMenus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	user, err := h.userUC.GetEntity(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	tree, err := h.svc.ResolveMenus(c.UserContext(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(auth.ToMenuNodeDTOs(tree))
}

// GetRoleMenus godoc
// @Summary      Menús asignados a un rol
// @Tags         rbac
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del rol"
// @Success      200  {array}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rbac/roles/{id}/menus [get]
func (h *RBACHandler) GetRoleMenus(c *fiber.Ctx) error {
	id, ok := h.existingRole(c)
	if !ok {
		return nil
	}
	menus, err := h.svc.RoleMenus(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MenuResponse, 0, len(menus))
	for i := range menus {
		out = append(out, *usecase.ToMenuResponse(&menus[i]))
	}
	return c.JSON(out)
}

// SetRoleMenus godoc
// @Summary      Reemplazar menús de un rol
// @Tags         rbac
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del rol"
// @Param        body  body  dto.AssignMenusRequest  true  "IDs de menú"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rbac/roles/{id}/menus [post]
func (h *RBACHandler) SetRoleMenus(c *fiber.Ctx) error {
	id, ok := h.existingRole(c)
	if !ok {
		return nil
	}
	var in dto.AssignMenusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	missing, err := h.menuUC.MissingIDs(c.UserContext(), in.MenuIDs)
	if err != nil {
		return respondError(c, err)
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MENU_NOT_FOUND", Message: fmt.Sprintf("menús inexistentes: %v", missing)})
	}
	if err := h.svc.SetRoleMenus(c.UserContext(), id, in.MenuIDs, actorFrom(c).Ref()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "menús asignados"})
}

// GetRoleFeatures godoc
// @Summary      Features asignadas a un rol
// @Tags         rbac
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del rol"
// @Success      200  {array}  dto.FeatureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rbac/roles/{id}/features [get]
func (h *RBACHandler) GetRoleFeatures(c *fiber.Ctx) error {
	id, ok := h.existingRole(c)
	if !ok {
		return nil
	}
	features, err := h.svc.RoleFeatures(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.FeatureResponse, 0, len(features))
	for i := range features {
		out = append(out, *usecase.ToFeatureResponse(&features[i]))
	}
	return c.JSON(out)
}

// SetRoleFeatures godoc
// @Summary      Reemplazar features de un rol
// @Tags         rbac
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del rol"
// @Param        body  body  dto.AssignFeaturesRequest  true  "IDs de feature"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rbac/roles/{id}/features [post]
func (h *RBACHandler) SetRoleFeatures(c *fiber.Ctx) error {
	id, ok := h.existingRole(c)
	if !ok {
		return nil
	}
	var in dto.AssignFeaturesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	missing, err := h.featureUC.MissingIDs(c.UserContext(), in.FeatureIDs)
	if err != nil {
		return respondError(c, err)
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FEATURE_NOT_FOUND", Message: fmt.Sprintf("features inexistentes: %v", missing)})
	}
	if err := h.svc.SetRoleFeatures(c.UserContext(), id, in.FeatureIDs, actorFrom(c).Ref()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "features asignadas"})
}

// existingRole lee :id y verifica que el rol exista. Si devuelve false la respuesta ya fue escrita.
func (h *RBACHandler) existingRole(c *fiber.Ctx) (int64, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		_ = invalidID(c)
		return 0, false
	}
	exists, err := h.roleUC.Exists(c.UserContext(), id)
	if err != nil {
		_ = respondError(c, err)
		return 0, false
	}
	if !exists {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ROLE_NOT_FOUND", Message: "rol no encontrado"})
		return 0, false
	}
	return id, true
}
