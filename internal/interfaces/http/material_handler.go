package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/usecase"
)

// MaterialHandler maneja el catálogo de materiales (protegido).
type MaterialHandler struct {
	uc    *usecase.MaterialUseCase
	query *inventory.QueryUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, query *inventory.QueryUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc, query: query}
}

// GetByID godoc
// @Summary      Obtener material con stock
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del material"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.query.GetMaterial(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", out)
}

// Create godoc
// @Summary      Crear material
// @Description  initial_quantity > 0 registra una entrada "Initial stock" en la misma transacción.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusCreated, "Material created successfully", out)
}

// Update godoc
// @Summary      Actualizar material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateMaterialRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Update(c.UserContext(), id, in); err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "Material updated successfully", nil)
}

// Delete godoc
// @Summary      Borrar material
// @Description  Según INVENTORY_DELETE_POLICY: archive (conserva el ledger) o cascade.
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del material"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "Material deleted successfully", nil)
}
