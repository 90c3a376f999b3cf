// Package store loads the product catalog once at startup into an immutable
// in-memory table and answers category/view filter queries against it.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
)

// Catalog is the read-only product table. It is never mutated after load,
// so it is safe for unlimited concurrent readers.
type Catalog struct {
	rows []models.CatalogRow
}

// NewCatalog wraps pre-built rows, preserving their order.
func NewCatalog(rows []models.CatalogRow) *Catalog {
	return &Catalog{rows: rows}
}

// Len returns the number of catalog rows.
func (c *Catalog) Len() int {
	return len(c.rows)
}

// Filter returns the rows matching the category pair, refined by view type:
// bestseller keeps bestseller rows, discount keeps discounted rows, anything
// else returns the base subset. Matching is exact and case-sensitive and the
// catalog storage order is preserved, so page N is stable across calls.
func (c *Catalog) Filter(mainCategory, subCategory, viewType string) []models.CatalogRow {
	var out []models.CatalogRow
	for _, row := range c.rows {
		if row.MainCategory != mainCategory || row.SubCategory != subCategory {
			continue
		}
		switch viewType {
		case models.ViewBestseller:
			if !row.IsBestseller {
				continue
			}
		case models.ViewDiscount:
			if !row.HasDiscount {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

// Column headers of the catalog CSV export.
const (
	colMainCategory    = "main_category"
	colSubCategory     = "sub_category"
	colProductID       = "Product_ID"
	colProductName     = "Product_Name"
	colDefinition      = "Definition"
	colBasePrice       = "Base_Price_Without_Addon"
	colDiscountedPrice = "Discounted_Base_Price_Without_Addon"
	colDeliveryTime    = "Delivery_Time"
	colOptions         = "Available_Options"
	colProductURL      = "Product_URL"
	colIsBestseller    = "is_bestseller"
	colHasDiscount     = "Has_Discount"
)

// LoadCatalogCSV reads the catalog from a CSV export. Row order in the file
// becomes the catalog storage order.
func LoadCatalogCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	rows, err := parseCatalogCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return NewCatalog(rows), nil
}

func parseCatalogCSV(r io.Reader) ([]models.CatalogRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colMainCategory, colSubCategory, colProductName, colBasePrice} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []models.CatalogRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		basePrice, err := strconv.ParseFloat(field(record, colBasePrice), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid base price %q", line, field(record, colBasePrice))
		}

		rows = append(rows, models.CatalogRow{
			MainCategory:     field(record, colMainCategory),
			SubCategory:      field(record, colSubCategory),
			ProductID:        field(record, colProductID),
			ProductName:      field(record, colProductName),
			Definition:       field(record, colDefinition),
			BasePrice:        basePrice,
			DiscountedPrice:  parseDiscount(field(record, colDiscountedPrice)),
			DeliveryTime:     field(record, colDeliveryTime),
			AvailableOptions: field(record, colOptions),
			ProductURL:       field(record, colProductURL),
			IsBestseller:     parseFlag(field(record, colIsBestseller)),
			HasDiscount:      parseFlag(field(record, colHasDiscount)),
		})
	}
	return rows, nil
}

// parseDiscount handles the catalog export's assorted no-discount markers.
func parseDiscount(raw string) *float64 {
	switch raw {
	case "", "No Discount", "NA", "N/A", "-":
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseFlag(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	}
	return false
}
