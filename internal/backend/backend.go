// Package backend turns the store configuration into a knowledge base store.
package backend

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"formulakb/internal/config"
	"formulakb/internal/db"
	"formulakb/internal/db/mock"
	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/internal/sheet"
	"formulakb/internal/sheet/csvgrid"
	"formulakb/internal/sheet/sheets"
)

// Opener holds the constructors used per driver. Tests swap them out.
type Opener struct {
	NewSheetsGrid     func(ctx context.Context, spreadsheetID, credentialsJSON string) (sheet.Grid, error)
	ConfigureDatabase func(cfg config.DatabaseConfig) (*gorm.DB, error)
	NewMockDatabase   func(ctx context.Context) (*gorm.DB, error)
}

// Default wires the real constructors.
func Default() Opener {
	return Opener{
		NewSheetsGrid: func(ctx context.Context, id, creds string) (sheet.Grid, error) {
			return sheets.New(ctx, id, creds)
		},
		ConfigureDatabase: db.Configure,
		NewMockDatabase:   mock.New,
	}
}

// Backend is an opened store with a short label for display.
type Backend struct {
	Store kb.Store
	Label string
}

// Open builds the store selected by cfg.Driver.
func (o Opener) Open(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	applog.Debug(ctx, "opening store", "driver", cfg.Driver)
	switch cfg.Driver {
	case config.DriverSheets:
		if o.NewSheetsGrid == nil {
			return Backend{}, fmt.Errorf("sheets driver not available")
		}
		grid, err := o.NewSheetsGrid(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.ServiceAccountJSON)
		if err != nil {
			return Backend{}, fmt.Errorf("connect to google sheets: %w", err)
		}
		return gridBackend(grid, "Google Sheets")
	case config.DriverCSV:
		grid, err := csvgrid.Open(cfg.CSVDir)
		if err != nil {
			return Backend{}, fmt.Errorf("open csv directory: %w", err)
		}
		return gridBackend(grid, "CSV")
	case config.DriverMemory:
		store, err := sheet.NewStore(sheet.NewMemoryGrid())
		if err != nil {
			return Backend{}, err
		}
		if err := store.Seed(ctx, mock.SampleTables()); err != nil {
			return Backend{}, fmt.Errorf("seed memory store: %w", err)
		}
		return Backend{Store: store, Label: "Demo"}, nil
	case config.DriverSQL:
		var (
			database *gorm.DB
			err      error
			label    = "SQL"
		)
		if cfg.Database.UseMock {
			applog.Info(ctx, "using mock database")
			if o.NewMockDatabase == nil {
				return Backend{}, fmt.Errorf("mock database not available")
			}
			database, err = o.NewMockDatabase(ctx)
			label = "Demo SQL"
		} else {
			if o.ConfigureDatabase == nil {
				return Backend{}, fmt.Errorf("sql driver not available")
			}
			database, err = o.ConfigureDatabase(cfg.Database)
		}
		if err != nil {
			return Backend{}, fmt.Errorf("open database: %w", err)
		}
		store, err := db.NewStore(database, label)
		if err != nil {
			return Backend{}, err
		}
		return Backend{Store: store, Label: label}, nil
	default:
		return Backend{}, fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}
}

func gridBackend(grid sheet.Grid, label string) (Backend, error) {
	store, err := sheet.NewStore(grid)
	if err != nil {
		return Backend{}, err
	}
	return Backend{Store: store, Label: label}, nil
}
