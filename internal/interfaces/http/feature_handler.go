package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
)

// FeatureHandler CRUD del catálogo de features (permisos).
type FeatureHandler struct {
	uc *usecase.FeatureUseCase
}

func NewFeatureHandler(uc *usecase.FeatureUseCase) *FeatureHandler {
	return &FeatureHandler{uc: uc}
}

// Create godoc
// @Summary      Crear feature
// @Tags         features
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeatureRequest  true  "Datos del feature"
// @Success      201   {object}  dto.FeatureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/features [post]
func (h *FeatureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFeatureRequest
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
// @Summary      Obtener feature por ID
// @Tags         features
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del feature"
// @Success      200  {object}  dto.FeatureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/features/{id} [get]
func (h *FeatureHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar features
// @Tags         features
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FeatureResponse
// @Router       /api/features [get]
func (h *FeatureHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar feature
// @Tags         features
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del feature"
// @Param        body  body  dto.UpdateFeatureRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.FeatureResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/features/{id} [put]
func (h *FeatureHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateFeatureRequest
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
// @Summary      Eliminar feature (soft delete)
// @Tags         features
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del feature"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/features/{id} [delete]
func (h *FeatureHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id, actorFrom(c).Ref()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "feature eliminado"})
}
