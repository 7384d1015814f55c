package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/models"
)

// Store serves the knowledge base tables from a SQL database. Ids come from
// the caller; the database never assigns them.
type Store struct {
	db    *gorm.DB
	label string
}

// NewStore wraps an opened, migrated database. label identifies the database
// in diagnostics and may be empty.
func NewStore(db *gorm.DB, label string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}
	return &Store{db: db, label: label}, nil
}

func loadTable[T any](ctx context.Context, db *gorm.DB, table string) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	return rows, nil
}

// Load reads every table ordered by id.
func (s *Store) Load(ctx context.Context) (kb.Tables, error) {
	var (
		tables kb.Tables
		err    error
	)
	if tables.Brands, err = loadTable[models.Brand](ctx, s.db, models.TableBrands); err != nil {
		return kb.Tables{}, err
	}
	if tables.Formulations, err = loadTable[models.Formulation](ctx, s.db, models.TableFormulations); err != nil {
		return kb.Tables{}, err
	}
	if tables.Ingredients, err = loadTable[models.Ingredient](ctx, s.db, models.TableIngredients); err != nil {
		return kb.Tables{}, err
	}
	if tables.FormulationIngredients, err = loadTable[models.FormulationIngredient](ctx, s.db, models.TableFormulationIngredients); err != nil {
		return kb.Tables{}, err
	}
	return tables, nil
}

func (s *Store) create(ctx context.Context, table string, row any) error {
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		applog.Error(ctx, "sql append failed", "table", table, "error", err)
		return fmt.Errorf("append %s row: %w", table, err)
	}
	return nil
}

func (s *Store) AppendBrand(ctx context.Context, brand models.Brand) error {
	return s.create(ctx, models.TableBrands, &brand)
}

func (s *Store) AppendFormulation(ctx context.Context, formulation models.Formulation) error {
	return s.create(ctx, models.TableFormulations, &formulation)
}

func (s *Store) AppendIngredient(ctx context.Context, ingredient models.Ingredient) error {
	return s.create(ctx, models.TableIngredients, &ingredient)
}

func (s *Store) AppendFormulationIngredient(ctx context.Context, link models.FormulationIngredient) error {
	return s.create(ctx, models.TableFormulationIngredients, &link)
}

// Diagnose reports the dialect and the knowledge base tables present.
func (s *Store) Diagnose(ctx context.Context) (kb.Diagnostics, error) {
	migrator := s.db.WithContext(ctx).Migrator()
	present := make([]string, 0, len(models.TableOrder))
	for _, table := range models.TableOrder {
		if migrator.HasTable(table) {
			present = append(present, table)
		}
	}
	return kb.Diagnostics{
		Backend:    "sql/" + s.db.Dialector.Name(),
		Identifier: kb.ShortIdentifier(s.label),
		Tables:     present,
	}, nil
}
