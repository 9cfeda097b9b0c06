package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/stock"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// QueryConfig límites por defecto de la capa de consultas.
type QueryConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	LowStockLimit   int
	RecentLimit     int
}

// QueryUseCase proyecciones de solo lectura sobre catálogo, snapshot y ledger.
// El estado de stock se deriva aquí con stock.Derive para todas las vistas.
type QueryUseCase struct {
	materials    repository.MaterialRepository
	transactions repository.TransactionRepository
	cfg          QueryConfig
}

// NewQueryUseCase construye la capa de consultas.
func NewQueryUseCase(materials repository.MaterialRepository, transactions repository.TransactionRepository, cfg QueryConfig) *QueryUseCase {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	if cfg.LowStockLimit <= 0 {
		cfg.LowStockLimit = 10
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 10
	}
	return &QueryUseCase{materials: materials, transactions: transactions, cfg: cfg}
}

// ListFilter parámetros del listado paginado.
type ListFilter struct {
	Page         int // 1-based; < 1 se trata como 1
	PageSize     int // <= 0 usa el default; se acota al máximo
	Search       string
	CategoryID   *int64
	LowStockOnly bool
}

// HistoryFilter rango [Start, End) del reporte de transacciones.
type HistoryFilter struct {
	Start      time.Time
	End        time.Time
	MaterialID *int64
}

type classified struct {
	row    repository.MaterialStock
	status stock.Status
}

// ListMaterialsWithStock lista materiales con su cantidad y estado, ordenados por urgencia
// (agotado, bajo, disponible), luego nombre y luego ID.
func (uc *QueryUseCase) ListMaterialsWithStock(ctx context.Context, f ListFilter) (*dto.MaterialPage, error) {
	rows, err := uc.materials.ListWithStock(ctx, repository.MaterialFilter{
		Search:     strings.TrimSpace(f.Search),
		CategoryID: f.CategoryID,
	})
	if err != nil {
		return nil, domain.Internal("list materials", err)
	}
	items := classify(rows)
	if f.LowStockOnly {
		items = needingAttention(items)
	}
	sortByUrgency(items)

	page, size := uc.normalizePage(f.Page, f.PageSize)
	total := len(items)
	out := &dto.MaterialPage{
		Items: []dto.MaterialStockResponse{},
		Pagination: dto.Pagination{
			Page:  page,
			Limit: size,
			Total: total,
			Pages: (total + size - 1) / size,
		},
	}
	start := (page - 1) * size
	if start >= total {
		return out, nil
	}
	end := min(start+size, total)
	for _, it := range items[start:end] {
		out.Items = append(out.Items, toMaterialStockResponse(it))
	}
	return out, nil
}

// GetMaterial devuelve un material activo con su stock; ErrNotFound si no existe o está archivado.
func (uc *QueryUseCase) GetMaterial(ctx context.Context, id int64) (*dto.MaterialStockResponse, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("material_id", "must be a positive id")
	}
	row, err := uc.materials.GetWithStock(ctx, id)
	if err != nil {
		return nil, domain.Internal("get material", err)
	}
	if row == nil || row.Material.Archived() {
		return nil, domain.ErrNotFound
	}
	resp := toMaterialStockResponse(classified{row: *row, status: stock.Derive(row.Quantity, row.Material.MinStockLevel)})
	return &resp, nil
}

// GetLowStockMaterials top-N de materiales agotados o bajo mínimo en orden de urgencia.
func (uc *QueryUseCase) GetLowStockMaterials(ctx context.Context, limit int) ([]dto.MaterialStockResponse, error) {
	if limit <= 0 {
		limit = uc.cfg.LowStockLimit
	}
	rows, err := uc.materials.ListWithStock(ctx, repository.MaterialFilter{})
	if err != nil {
		return nil, domain.Internal("low stock materials", err)
	}
	items := needingAttention(classify(rows))
	sortByUrgency(items)
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]dto.MaterialStockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toMaterialStockResponse(it))
	}
	return out, nil
}

// GetTransactionHistory transacciones de [Start, End), más recientes primero.
func (uc *QueryUseCase) GetTransactionHistory(ctx context.Context, f HistoryFilter) ([]dto.TransactionResponse, error) {
	if f.Start.IsZero() || f.End.IsZero() {
		return nil, domain.NewValidationError("date_range", "start and end dates are required")
	}
	if f.Start.After(f.End) {
		return nil, domain.NewValidationError("date_range", "start date must not be after end date")
	}
	if f.MaterialID != nil && *f.MaterialID <= 0 {
		f.MaterialID = nil
	}
	views, err := uc.transactions.History(ctx, repository.HistoryFilter{From: f.Start, To: f.End, MaterialID: f.MaterialID})
	if err != nil {
		return nil, domain.Internal("transaction history", err)
	}
	return toTransactionResponses(views), nil
}

// GetRecentTransactions últimas limit transacciones (default de configuración).
func (uc *QueryUseCase) GetRecentTransactions(ctx context.Context, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = uc.cfg.RecentLimit
	}
	views, err := uc.transactions.Recent(ctx, limit)
	if err != nil {
		return nil, domain.Internal("recent transactions", err)
	}
	return toTransactionResponses(views), nil
}

// GetInventoryValuation conteos por estado y valor total: Σ cantidad * precio promedio de entradas.
// Los materiales sin entradas con precio aportan 0.
func (uc *QueryUseCase) GetInventoryValuation(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var (
		rows   []repository.MaterialStock
		prices map[int64]decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = uc.materials.ListWithStock(gctx, repository.MaterialFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = uc.transactions.AverageInPrices(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.Internal("inventory valuation", err)
	}

	out := &dto.DashboardStatsResponse{TotalValue: decimal.Zero}
	for _, it := range classify(rows) {
		out.TotalMaterials++
		switch it.status {
		case stock.StatusOutOfStock:
			out.OutOfStock++
		case stock.StatusLowStock:
			out.LowStock++
		default:
			out.InStock++
		}
		avg, priced := prices[it.row.Material.ID]
		out.TotalValue = out.TotalValue.Add(stock.Value(it.row.Quantity, avg, priced))
	}
	out.TotalValue = out.TotalValue.Round(2)
	return out, nil
}

// GetInventoryReport todos los materiales activos ordenados por categoría y nombre.
func (uc *QueryUseCase) GetInventoryReport(ctx context.Context) ([]dto.MaterialStockResponse, error) {
	rows, err := uc.materials.ListWithStock(ctx, repository.MaterialFilter{})
	if err != nil {
		return nil, domain.Internal("inventory report", err)
	}
	items := classify(rows)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].row.Material, items[j].row.Material
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	out := make([]dto.MaterialStockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toMaterialStockResponse(it))
	}
	return out, nil
}

func (uc *QueryUseCase) normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = uc.cfg.DefaultPageSize
	}
	if size > uc.cfg.MaxPageSize {
		size = uc.cfg.MaxPageSize
	}
	return page, size
}

func classify(rows []repository.MaterialStock) []classified {
	out := make([]classified, 0, len(rows))
	for _, r := range rows {
		out = append(out, classified{row: r, status: stock.Derive(r.Quantity, r.Material.MinStockLevel)})
	}
	return out
}

func needingAttention(items []classified) []classified {
	out := items[:0]
	for _, it := range items {
		if it.status.NeedsAttention() {
			out = append(out, it)
		}
	}
	return out
}

func sortByUrgency(items []classified) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].status.Rank(), items[j].status.Rank()
		if ri != rj {
			return ri < rj
		}
		a, b := items[i].row.Material, items[j].row.Material
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func toMaterialStockResponse(it classified) dto.MaterialStockResponse {
	m := it.row.Material
	return dto.MaterialStockResponse{
		MaterialID:    m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Unit:          m.Unit,
		CategoryID:    m.CategoryID,
		CategoryName:  m.CategoryName,
		MinStockLevel: m.MinStockLevel,
		Quantity:      it.row.Quantity,
		Status:        string(it.status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toTransactionResponses(views []*entity.TransactionView) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.TransactionResponse{
			TransactionID: v.ID,
			Date:          v.Date,
			Type:          v.Type,
			Quantity:      v.Quantity,
			MaterialID:    v.MaterialID,
			MaterialName:  v.MaterialName,
			Unit:          v.Unit,
			SupplierID:    v.SupplierID,
			SupplierName:  v.SupplierName,
			ProjectID:     v.ProjectID,
			ProjectName:   v.ProjectName,
			UnitPrice:     v.UnitPrice,
			Notes:         v.Notes,
			RecordedBy:    v.RecordedBy,
		})
	}
	return out
}
