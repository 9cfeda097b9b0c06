package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/usecase"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/kyujizt/Storage-Konstruksi/internal/infrastructure/memory"
	infrapdf "github.com/kyujizt/Storage-Konstruksi/internal/infrastructure/pdf"
	"github.com/kyujizt/Storage-Konstruksi/internal/infrastructure/postgres"
	httpRouter "github.com/kyujizt/Storage-Konstruksi/internal/interfaces/http"
	"github.com/kyujizt/Storage-Konstruksi/pkg/config"
	"github.com/kyujizt/Storage-Konstruksi/pkg/logger"
)

// storage repositorios de solo lectura/autocommit más el runner transaccional del driver elegido.
type storage struct {
	txRunner     inventory.TxRunner
	materials    repository.MaterialRepository
	transactions repository.TransactionRepository
	categories   repository.CategoryRepository
	suppliers    repository.SupplierRepository
	projects     repository.ProjectRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Inventory.StorageDriver).
		Str("delete_policy", cfg.Inventory.DeletePolicy).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	engine := inventory.NewStockEngine(store.txRunner, log, inventory.EngineConfig{
		MutationTimeout: cfg.Inventory.MutationTimeout,
	})
	query := inventory.NewQueryUseCase(store.materials, store.transactions, inventory.QueryConfig{
		DefaultPageSize: cfg.Inventory.DefaultPageSize,
		MaxPageSize:     cfg.Inventory.MaxPageSize,
		LowStockLimit:   cfg.Inventory.LowStockLimit,
		RecentLimit:     cfg.Inventory.RecentLimit,
	})
	materialUC := usecase.NewMaterialUseCase(store.txRunner, engine, store.materials, store.categories,
		usecase.DeletePolicy(cfg.Inventory.DeletePolicy))
	categoryUC := usecase.NewCategoryUseCase(store.categories, store.materials)
	directoryUC := usecase.NewDirectoryUseCase(store.suppliers, store.projects)

	// PDF: reporte de inventario
	reportPDF := infrapdf.NewInventoryReportGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storage Konstruksi API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:      engine,
		Query:       query,
		MaterialUC:  materialUC,
		CategoryUC:  categoryUC,
		DirectoryUC: directoryUC,
		Reports:     reportPDF,
		Auth:        cfg.Auth,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Inventory.StorageDriver == config.StorageDriverMemory {
		log.Warn().Msg("driver memory: los datos se pierden al reiniciar")
		s := memory.New()
		return &storage{
			txRunner:     s,
			materials:    s.Materials(),
			transactions: s.Transactions(),
			categories:   s.Categories(),
			suppliers:    s.Suppliers(),
			projects:     s.Projects(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		txRunner:     postgres.NewTxRunner(pool, cfg.Inventory.MutationTimeout),
		materials:    postgres.NewMaterialRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		categories:   postgres.NewCategoryRepository(pool),
		suppliers:    postgres.NewSupplierRepository(pool),
		projects:     postgres.NewProjectRepository(pool),
		close:        pool.Close,
	}, nil
}
