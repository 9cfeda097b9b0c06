package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	query *inventory.QueryUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(query *inventory.QueryUseCase) *DashboardHandler {
	return &DashboardHandler{query: query}
}

// Stats devuelve los conteos por estado y el valor total del inventario.
// GET /api/dashboard/stats
//
// total_value = Σ cantidad * precio promedio de las entradas con precio; materiales sin
// entradas con precio aportan 0.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.query.GetInventoryValuation(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", stats)
}
