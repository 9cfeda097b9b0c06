// import_catalog carga un catálogo de materiales desde CSV.
//
// Uso: go run ./cmd/import_catalog -file materiales.csv [-latin1] [-dry-run]
//
// Columnas: category,name,unit,min_stock_level,description,initial_quantity.
// Las categorías que no existen se crean; initial_quantity > 0 registra la entrada "Initial stock".
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/usecase"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/infrastructure/postgres"
	"github.com/kyujizt/Storage-Konstruksi/pkg/config"
	"github.com/kyujizt/Storage-Konstruksi/pkg/logger"
)

var importer = entity.Actor{UserID: "import_catalog", Username: "import_catalog", Role: entity.RoleAdmin}

func main() {
	file := flag.String("file", "materials.csv", "ruta del CSV")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo validar, no escribir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, App: "import_catalog"})

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := readCatalog(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("rows", len(rows)).Msg("CSV válido")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.Migrate {
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	txRunner := postgres.NewTxRunner(pool, cfg.Inventory.MutationTimeout)
	materials := postgres.NewMaterialRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	engine := inventory.NewStockEngine(txRunner, log, inventory.EngineConfig{MutationTimeout: cfg.Inventory.MutationTimeout})
	materialUC := usecase.NewMaterialUseCase(txRunner, engine, materials, categories, usecase.DeletePolicy(cfg.Inventory.DeletePolicy))
	categoryUC := usecase.NewCategoryUseCase(categories, materials)

	imp := catalogImporter{materials: materialUC, categories: categoryUC, log: log}
	created, err := imp.run(ctx, rows)
	if err != nil {
		log.Fatal().Err(err).Int("created", created).Msg("importación incompleta")
	}
	log.Info().Int("created", created).Msg("importación terminada")
}

type catalogImporter struct {
	materials  *usecase.MaterialUseCase
	categories *usecase.CategoryUseCase
	log        *logger.Logger
}

// run crea las categorías faltantes y luego cada material. Se detiene en el primer error.
func (imp catalogImporter) run(ctx context.Context, rows []catalogRow) (int, error) {
	existing, err := imp.categories.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listar categorías: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.CategoryID
	}

	created := 0
	for _, r := range rows {
		req := dto.CreateMaterialRequest{
			Name:            r.Name,
			Description:     r.Description,
			Unit:            r.Unit,
			MinStockLevel:   r.MinStockLevel,
			InitialQuantity: r.InitialQuantity,
		}
		if r.Category != "" {
			key := strings.ToLower(r.Category)
			id, ok := byName[key]
			if !ok {
				cat, err := imp.categories.Create(ctx, dto.CreateCategoryRequest{Name: r.Category})
				if err != nil {
					return created, fmt.Errorf("línea %d: crear categoría %q: %w", r.Line, r.Category, err)
				}
				id = cat.CategoryID
				byName[key] = id
				imp.log.Info().Str("category", r.Category).Int64("category_id", id).Msg("categoría creada")
			}
			req.CategoryID = &id
		}
		out, err := imp.materials.Create(ctx, importer, req)
		if err != nil {
			return created, fmt.Errorf("línea %d: crear material %q: %w", r.Line, r.Name, err)
		}
		created++
		imp.log.Debug().Int64("material_id", out.MaterialID).Str("name", r.Name).Msg("material creado")
	}
	return created, nil
}
