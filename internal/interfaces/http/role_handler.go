package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
)

// RoleHandler CRUD de roles. Los roles con tenant nil son globales.
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear rol
// @Description  El código es único por tenant (los globales comparten espacio con tenant nil).
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "Datos del rol"
// @Success      201   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Code == "" || in.Name == "" {
		return validation(c, "code y name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in, actorFrom(c).Ref())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener rol por ID
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del rol"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar roles
// @Description  Con tenant_id devuelve los del tenant más los globales.
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        tenant_id  query  int  false  "Filtro por tenant"
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), tenantFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del rol"
// @Param        body  body  dto.UpdateRoleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.RoleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in, actorFrom(c).Ref())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar rol (soft delete)
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del rol"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id, actorFrom(c).Ref()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "rol eliminado"})
}

// tenantFilter el tenant del token manda; un usuario de organización puede filtrar con ?tenant_id=.
func tenantFilter(c *fiber.Ctx) *int64 {
	if t := GetTenantID(c); t != nil {
		return t
	}
	return queryTenantID(c)
}
