package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
)

// TenantHandler CRUD de tenants (solo administración).
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tenant
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "Datos del tenant"
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
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
// @Summary      Obtener tenant por ID
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del tenant"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [get]
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar tenants
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TenantResponse
// @Router       /api/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tenant
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del tenant"
// @Param        body  body  dto.UpdateTenantRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TenantResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [put]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateTenantRequest
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
// @Summary      Eliminar tenant (soft delete)
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del tenant"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [delete]
func (h *TenantHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id, actorFrom(c).Ref()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "tenant eliminado"})
}
