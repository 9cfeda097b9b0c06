package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// columnas esperadas en la cabecera (el orden puede variar).
var columns = []string{"category", "name", "unit", "min_stock_level", "description", "initial_quantity"}

// catalogRow una fila del CSV ya tipada.
type catalogRow struct {
	Line            int
	Category        string
	Name            string
	Unit            string
	MinStockLevel   decimal.Decimal
	Description     string
	InitialQuantity *decimal.Decimal
}

// readCatalog lee el CSV completo. latin1 decodifica exportaciones ISO-8859-1 de hojas de cálculo.
// Los errores de fila indican el número de línea.
func readCatalog(r io.Reader, latin1 bool) ([]catalogRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range []string{"name", "unit"} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("cabecera: falta la columna %q (esperadas: %s)", c, strings.Join(columns, ","))
		}
	}

	var rows []catalogRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if strings.Join(rec, "") == "" {
			continue
		}

		row := catalogRow{
			Line:        line,
			Category:    get("category"),
			Name:        get("name"),
			Unit:        get("unit"),
			Description: get("description"),
		}
		if row.Name == "" || row.Unit == "" {
			return nil, fmt.Errorf("línea %d: name y unit son requeridos", line)
		}
		if v := get("min_stock_level"); v != "" {
			if row.MinStockLevel, err = decimal.NewFromString(v); err != nil {
				return nil, fmt.Errorf("línea %d: min_stock_level %q: %w", line, v, err)
			}
		}
		if v := get("initial_quantity"); v != "" {
			q, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("línea %d: initial_quantity %q: %w", line, v, err)
			}
			row.InitialQuantity = &q
		}
		rows = append(rows, row)
	}
	return rows, nil
}
