package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
)

const dateLayout = "2006-01-02"

// ReportRenderer genera la representación PDF del reporte de inventario.
type ReportRenderer interface {
	Generate(ctx context.Context, items []dto.MaterialStockResponse, generatedAt time.Time) ([]byte, error)
}

// ReportHandler maneja los reportes: historial, recientes e inventario (JSON y PDF).
type ReportHandler struct {
	query    *inventory.QueryUseCase
	renderer ReportRenderer
	now      func() time.Time
}

// NewReportHandler construye el handler. renderer nil deshabilita el PDF (responde 404).
func NewReportHandler(query *inventory.QueryUseCase, renderer ReportRenderer) *ReportHandler {
	return &ReportHandler{query: query, renderer: renderer, now: time.Now}
}

// Transactions godoc
// @Summary      Historial de transacciones
// @Description  Fechas YYYY-MM-DD; end_date es inclusivo (se consulta hasta el día siguiente exclusivo).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date   query  string  true   "Fecha inicial (YYYY-MM-DD)"
// @Param        end_date     query  string  true   "Fecha final (YYYY-MM-DD)"
// @Param        material_id  query  int     false  "Filtrar por material"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/transactions [get]
func (h *ReportHandler) Transactions(c *fiber.Ctx) error {
	start, err := time.ParseInLocation(dateLayout, c.Query("start_date"), time.Local)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, CodeInvalidDate, "start_date must use the YYYY-MM-DD format")
	}
	end, err := time.ParseInLocation(dateLayout, c.Query("end_date"), time.Local)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, CodeInvalidDate, "end_date must use the YYYY-MM-DD format")
	}
	if start.After(end) {
		return fail(c, fiber.StatusBadRequest, CodeInvalidDate, "start_date must not be after end_date")
	}

	f := inventory.HistoryFilter{Start: start, End: end.AddDate(0, 0, 1)}
	if raw := c.Query("material_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return writeError(c, domain.NewValidationError("material_id", "must be a positive integer"))
		}
		f.MaterialID = &id
	}
	out, err := h.query.GetTransactionHistory(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", out)
}

// Recent godoc
// @Summary      Transacciones recientes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(10)
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/reports/recent-transactions [get]
func (h *ReportHandler) Recent(c *fiber.Ctx) error {
	out, err := h.query.GetRecentTransactions(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", out)
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Description  Materiales activos ordenados por categoría y nombre, con estado derivado.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.query.GetInventoryReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", out)
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	if h.renderer == nil {
		return writeError(c, domain.ErrNotFound)
	}
	items, err := h.query.GetInventoryReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	now := h.now()
	pdf, err := h.renderer.Generate(c.UserContext(), items, now)
	if err != nil {
		return writeError(c, domain.Internal("render inventory pdf", err))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory-`+now.Format(dateLayout)+`.pdf"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}
