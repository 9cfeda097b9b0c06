package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
)

// InventoryHandler maneja el listado con stock y los movimientos de entrada/salida (protegido).
type InventoryHandler struct {
	engine *inventory.StockEngine
	query  *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.StockEngine, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, query: query}
}

// List godoc
// @Summary      Listar materiales con stock
// @Description  Ordenado por urgencia (agotado, bajo, disponible), luego nombre.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página (1-based)"  default(1)
// @Param        limit        query  int     false  "Tamaño de página"  default(10)
// @Param        search       query  string  false  "Búsqueda por nombre o descripción"
// @Param        category_id  query  int     false  "Filtrar por categoría"
// @Param        low_stock    query  int     false  "1 = solo agotados o bajo mínimo"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	f := inventory.ListFilter{
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("limit", 0),
		Search:       c.Query("search"),
		LowStockOnly: c.QueryBool("low_stock", false),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return writeError(c, domain.NewValidationError("category_id", "must be a positive integer"))
		}
		f.CategoryID = &id
	}
	page, err := h.query.ListMaterialsWithStock(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return successPage(c, page.Items, page.Pagination)
}

// LowStock godoc
// @Summary      Materiales que requieren atención
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(10)
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.query.GetLowStockMaterials(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", items)
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "material_id, quantity, supplier_id?, unit_price?, notes"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.engine.StockInFromRequest(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusCreated, "Stock added successfully", out)
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Description  Rechaza con 409 insufficient_stock si la cantidad supera lo disponible.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "material_id, quantity, project_id?, notes"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [put]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.engine.StockOutFromRequest(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "Stock removed successfully", out)
}
