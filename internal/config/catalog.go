package config

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/goliatone/go-pricefield/pkg/catalog"
	"github.com/goliatone/go-pricefield/pkg/catalog/pgcatalog"
)

// OpenCatalog loads the catalog named by cfg.CatalogSource. Database
// catalogs are read once into a snapshot and the connection is closed.
func OpenCatalog(ctx context.Context, cfg Config) (*catalog.Static, error) {
	switch cfg.CatalogSource() {
	case CatalogSourceDatabase:
		conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("config: connect catalog database: %w", err)
		}
		defer func() {
			_ = conn.Close(context.Background())
		}()
		cat, err := pgcatalog.Load(ctx, conn, pgcatalog.WithTable(cfg.CatalogTable))
		if err != nil {
			return nil, fmt.Errorf("config: load catalog table: %w", err)
		}
		return cat, nil
	case CatalogSourceFile:
		cat, err := catalog.LoadYAMLFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("config: load catalog file: %w", err)
		}
		return cat, nil
	default:
		cat, err := catalog.ISO(cfg.Currencies...)
		if err != nil {
			return nil, fmt.Errorf("config: iso catalog: %w", err)
		}
		return cat, nil
	}
}
