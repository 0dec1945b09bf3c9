package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
)

// MenuHandler CRUD de menús (dos niveles; nivel 2 requiere padre de nivel 1).
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Create godoc
// @Summary      Crear menú
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuRequest  true  "Datos del menú"
// @Success      201   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	if in.Level != 1 && in.Level != 2 {
		return validation(c, "level debe ser 1 o 2")
	}
	out, err := h.uc.Create(c.UserContext(), in, actorFrom(c).Ref())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener menú por ID
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del menú"
// @Success      200  {object}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar menús
// @Description  Ordenados por (sort_order, id). Con tenant_id incluye los globales.
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        tenant_id  query  int  false  "Filtro por tenant"
// @Success      200  {array}  dto.MenuResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), tenantFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar menú
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del menú"
// @Param        body  body  dto.UpdateMenuRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MenuResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateMenuRequest
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
// @Summary      Eliminar menú (soft delete)
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del menú"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id, actorFrom(c).Ref()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "menú eliminado"})
}
