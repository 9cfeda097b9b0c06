package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/usecase"
	"github.com/kyujizt/Storage-Konstruksi/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine      *inventory.StockEngine
	Query       *inventory.QueryUseCase
	MaterialUC  *usecase.MaterialUseCase
	CategoryUC  *usecase.CategoryUseCase
	DirectoryUC *usecase.DirectoryUseCase
	Reports     ReportRenderer
	Auth        config.AuthConfig
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token; las mutaciones
// además exigen un rol de la lista configurada.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	mutation := RequireRole(deps.Auth.MutationRoles...)
	catalog := RequireRole(deps.Auth.CatalogRoles...)
	admin := RequireRole(deps.Auth.AdminRoles...)

	// Inventario: listado con stock y movimientos
	inventoryHandler := NewInventoryHandler(deps.Engine, deps.Query)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Post("/", mutation, inventoryHandler.StockIn)
	inv.Put("/", mutation, inventoryHandler.StockOut)

	// Catálogo de materiales
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.Query)
	materials := api.Group("/materials")
	materials.Get("/:id", materialHandler.GetByID)
	materials.Post("/", catalog, materialHandler.Create)
	materials.Put("/:id", catalog, materialHandler.Update)
	materials.Delete("/:id", admin, materialHandler.Delete)

	// Categorías
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", catalog, categoryHandler.Create)
	categories.Put("/:id", catalog, categoryHandler.Update)
	categories.Delete("/:id", admin, categoryHandler.Delete)

	// Proveedores y proyectos
	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	api.Get("/suppliers", directoryHandler.ListSuppliers)
	api.Post("/suppliers", catalog, directoryHandler.CreateSupplier)
	api.Get("/projects", directoryHandler.ListProjects)
	api.Post("/projects", catalog, directoryHandler.CreateProject)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Query)
	api.Get("/dashboard/stats", dashboardHandler.Stats)

	// Reportes
	reportHandler := NewReportHandler(deps.Query, deps.Reports)
	reports := api.Group("/reports")
	reports.Get("/transactions", reportHandler.Transactions)
	reports.Get("/recent-transactions", reportHandler.Recent)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
	reports.Get("/inventory", reportHandler.Inventory)
}
