package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/usecase"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/kyujizt/Storage-Konstruksi/internal/infrastructure/memory"
	"github.com/kyujizt/Storage-Konstruksi/pkg/logger"
)

const sampleCSV = `category,name,unit,min_stock_level,description,initial_quantity
Semen,Semen Gresik 50kg,sak,20,Semen abu-abu,100
Semen,Semen Putih,sak,5,,
,Paku 5cm,kg,2.5,Paku biasa,0
`

func TestReadCatalog(t *testing.T) {
	rows, err := readCatalog(strings.NewReader(sampleCSV), false)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Semen Gresik 50kg", rows[0].Name)
	assert.Equal(t, "20", rows[0].MinStockLevel.String())
	require.NotNil(t, rows[0].InitialQuantity)
	assert.Equal(t, "100", rows[0].InitialQuantity.String())
	assert.Nil(t, rows[1].InitialQuantity)
	assert.Equal(t, "", rows[2].Category)
	assert.Equal(t, "2.5", rows[2].MinStockLevel.String())
	assert.Equal(t, 4, rows[2].Line)
}

func TestReadCatalog_Latin1(t *testing.T) {
	var buf bytes.Buffer
	w := charmap.ISO8859_1.NewEncoder().Writer(&buf)
	_, err := w.Write([]byte("name,unit\nCerámica piso,m²\n"))
	require.NoError(t, err)

	rows, err := readCatalog(&buf, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cerámica piso", rows[0].Name)
	assert.Equal(t, "m²", rows[0].Unit)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("category,name\nSemen,Gresik\n"), false)
	assert.ErrorContains(t, err, `"unit"`)

	_, err = readCatalog(strings.NewReader("name,unit,min_stock_level\nPasir,m3,banyak\n"), false)
	assert.ErrorContains(t, err, "línea 2")

	_, err = readCatalog(strings.NewReader("name,unit\n,m3\n"), false)
	assert.ErrorContains(t, err, "requeridos")
}

func TestCatalogImporter_CreaCategoriasYMateriales(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	engine := inventory.NewStockEngine(s, logger.Nop(), inventory.EngineConfig{})
	imp := catalogImporter{
		materials:  usecase.NewMaterialUseCase(s, engine, s.Materials(), s.Categories(), usecase.DeletePolicyArchive),
		categories: usecase.NewCategoryUseCase(s.Categories(), s.Materials()),
		log:        logger.Nop(),
	}
	rows, err := readCatalog(strings.NewReader(sampleCSV), false)
	require.NoError(t, err)

	created, err := imp.run(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	cats, err := s.Categories().List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1, "Semen se crea una sola vez")

	stock, err := s.Materials().ListWithStock(ctx, repository.MaterialFilter{})
	require.NoError(t, err)
	require.Len(t, stock, 3)
	assert.Equal(t, "100", stock[0].Quantity.String())

	recent, err := s.Transactions().Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1, "solo initial_quantity > 0 genera transacción")
}
