package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// LoadCatalogPostgres loads the catalog from a products table. The connection
// is used only for the startup snapshot; after load the catalog is served
// from memory exactly like the CSV path.
func LoadCatalogPostgres(ctx context.Context, databaseURL string) (*Catalog, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	db.SetConnMaxLifetime(5 * time.Minute)

	var rows []models.CatalogRow
	query := `
		SELECT main_category, sub_category, product_id, product_name, definition,
		       base_price, discounted_price, delivery_time, available_options,
		       product_url, is_bestseller, has_discount
		FROM products
		ORDER BY id`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return NewCatalog(rows), nil
}
