package kb

import (
	"context"
	"fmt"
	"strings"

	"formulakb/internal/catalog"
	applog "formulakb/internal/log"
	"formulakb/models"
)

// Session holds one consistent view of the knowledge base together with the
// store it writes to. Build a new session to observe external edits.
type Session struct {
	store   Store
	catalog *catalog.Registry

	Brands                 *Repository[models.Brand]
	Formulations           *Repository[models.Formulation]
	Ingredients            *Repository[models.Ingredient]
	FormulationIngredients *Repository[models.FormulationIngredient]
}

// Option customises a Session.
type Option func(*Session)

// WithCatalog replaces the default rule registry.
func WithCatalog(registry *catalog.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.catalog = registry
		}
	}
}

// Open loads every table from store and returns a session over them.
func Open(ctx context.Context, store Store, opts ...Option) (*Session, error) {
	if store == nil {
		return nil, fmt.Errorf("kb: store is nil")
	}
	tables, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	applog.Debug(ctx, "knowledge base loaded",
		"brands", len(tables.Brands),
		"formulations", len(tables.Formulations),
		"ingredients", len(tables.Ingredients),
		"links", len(tables.FormulationIngredients),
	)
	return NewSession(store, tables, opts...), nil
}

// NewSession wraps already loaded tables. With a nil store, appends only
// update the in-memory mirrors.
func NewSession(store Store, tables Tables, opts ...Option) *Session {
	s := &Session{
		store:   store,
		catalog: catalog.Default(),
	}

	var (
		appendBrand       func(context.Context, models.Brand) error
		appendFormulation func(context.Context, models.Formulation) error
		appendIngredient  func(context.Context, models.Ingredient) error
		appendLink        func(context.Context, models.FormulationIngredient) error
	)
	if store != nil {
		appendBrand = store.AppendBrand
		appendFormulation = store.AppendFormulation
		appendIngredient = store.AppendIngredient
		appendLink = store.AppendFormulationIngredient
	}

	s.Brands = NewRepository(tables.Brands,
		func(b models.Brand) int64 { return b.ID },
		func(b models.Brand) string { return b.Name },
		appendBrand,
	)
	s.Formulations = NewRepository(tables.Formulations,
		func(f models.Formulation) int64 { return f.ID },
		nil,
		appendFormulation,
	)
	s.Ingredients = NewRepository(tables.Ingredients,
		func(i models.Ingredient) int64 { return i.ID },
		func(i models.Ingredient) string { return models.INCIKey(i.INCIName) },
		appendIngredient,
	)
	s.FormulationIngredients = NewRepository(tables.FormulationIngredients,
		func(fi models.FormulationIngredient) int64 { return fi.ID },
		nil,
		appendLink,
	)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the backing store.
func (s *Session) Store() Store {
	return s.store
}

// Catalog exposes the rule registry used by the session.
func (s *Session) Catalog() *catalog.Registry {
	return s.catalog
}

// Snapshot copies the current mirrors into a Tables value.
func (s *Session) Snapshot() Tables {
	return Tables{
		Brands:                 append([]models.Brand(nil), s.Brands.List()...),
		Formulations:           append([]models.Formulation(nil), s.Formulations.List()...),
		Ingredients:            append([]models.Ingredient(nil), s.Ingredients.List()...),
		FormulationIngredients: append([]models.FormulationIngredient(nil), s.FormulationIngredients.List()...),
	}
}

// All is the selector value meaning "no filter".
const All = "(All)"

func normalizeFilterValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == All {
		return ""
	}
	return value
}
