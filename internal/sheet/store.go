package sheet

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/models"
)

// Store implements kb.Store on top of a Grid.
type Store struct {
	grid Grid

	mu    sync.Mutex
	known map[string]bool
}

// NewStore returns a store over grid. Tabs are created lazily.
func NewStore(grid Grid) (*Store, error) {
	if grid == nil {
		return nil, fmt.Errorf("sheet: grid is nil")
	}
	return &Store{grid: grid, known: make(map[string]bool)}, nil
}

// Grid exposes the underlying workbook.
func (s *Store) Grid() Grid {
	return s.grid
}

// openTab creates the tab on first use when the workbook lacks it.
func (s *Store) openTab(ctx context.Context, table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.known[table] {
		return nil
	}
	tabs, err := s.grid.Tabs(ctx)
	if err != nil {
		return fmt.Errorf("list tabs: %w", err)
	}
	if !slices.Contains(tabs, table) {
		if err := s.grid.AddTab(ctx, table); err != nil {
			return fmt.Errorf("create tab %s: %w", table, err)
		}
		applog.Info(ctx, "tab created", "tab", table)
	}
	s.known[table] = true
	return nil
}

// seedHeader writes the canonical header when the current one is empty and
// returns the header in effect.
func (s *Store) seedHeader(ctx context.Context, table string, current []string) ([]string, error) {
	if !blank(current) {
		return current, nil
	}
	header := models.Headers[table]
	if err := s.grid.SetHeader(ctx, table, header); err != nil {
		return nil, fmt.Errorf("seed header for %s: %w", table, err)
	}
	applog.Debug(ctx, "tab header seeded", "tab", table)
	return header, nil
}

func loadTab[T any](ctx context.Context, s *Store, c codec[T]) ([]T, error) {
	if err := s.openTab(ctx, c.table); err != nil {
		return nil, err
	}
	rows, err := s.grid.Values(ctx, c.table)
	if err != nil {
		return nil, fmt.Errorf("read tab %s: %w", c.table, err)
	}
	var current []string
	if len(rows) > 0 {
		current = rows[0]
	}
	header, err := s.seedHeader(ctx, c.table, current)
	if err != nil {
		return nil, err
	}

	return decodeRows(c, header, rows), nil
}

// decodeRows skips the header row and any blank rows.
func decodeRows[T any](c codec[T], header []string, rows [][]string) []T {
	out := make([]T, 0, max(len(rows)-1, 0))
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		out = append(out, c.decode(newRecord(header, rows[i])))
	}
	return out
}

func readTab[T any](ctx context.Context, grid Grid, tabs []string, c codec[T]) ([]T, error) {
	if !slices.Contains(tabs, c.table) {
		return nil, nil
	}
	rows, err := grid.Values(ctx, c.table)
	if err != nil {
		return nil, fmt.Errorf("read tab %s: %w", c.table, err)
	}
	header := models.Headers[c.table]
	if len(rows) > 0 && !blank(rows[0]) {
		header = rows[0]
	}
	return decodeRows(c, header, rows), nil
}

// Read loads every table from grid without creating tabs or seeding headers.
// Missing tabs read as empty tables.
func Read(ctx context.Context, grid Grid) (kb.Tables, error) {
	tabs, err := grid.Tabs(ctx)
	if err != nil {
		return kb.Tables{}, fmt.Errorf("list tabs: %w", err)
	}
	var tables kb.Tables
	if tables.Brands, err = readTab(ctx, grid, tabs, brandCodec); err != nil {
		return kb.Tables{}, err
	}
	if tables.Formulations, err = readTab(ctx, grid, tabs, formulationCodec); err != nil {
		return kb.Tables{}, err
	}
	if tables.Ingredients, err = readTab(ctx, grid, tabs, ingredientCodec); err != nil {
		return kb.Tables{}, err
	}
	if tables.FormulationIngredients, err = readTab(ctx, grid, tabs, linkCodec); err != nil {
		return kb.Tables{}, err
	}
	return tables, nil
}

// appendTab lays the value out by the tab's current header row.
func appendTab[T any](ctx context.Context, s *Store, c codec[T], value T) error {
	if err := s.openTab(ctx, c.table); err != nil {
		return err
	}
	current, err := s.grid.Header(ctx, c.table)
	if err != nil {
		return fmt.Errorf("read header of %s: %w", c.table, err)
	}
	header, err := s.seedHeader(ctx, c.table, current)
	if err != nil {
		return err
	}
	if err := s.grid.AppendRow(ctx, c.table, c.encode(value).row(header)); err != nil {
		return fmt.Errorf("append to %s: %w", c.table, err)
	}
	return nil
}

// Load reads every tab, creating missing ones.
func (s *Store) Load(ctx context.Context) (kb.Tables, error) {
	var (
		tables kb.Tables
		err    error
	)
	if tables.Brands, err = loadTab(ctx, s, brandCodec); err != nil {
		return kb.Tables{}, err
	}
	if tables.Formulations, err = loadTab(ctx, s, formulationCodec); err != nil {
		return kb.Tables{}, err
	}
	if tables.Ingredients, err = loadTab(ctx, s, ingredientCodec); err != nil {
		return kb.Tables{}, err
	}
	if tables.FormulationIngredients, err = loadTab(ctx, s, linkCodec); err != nil {
		return kb.Tables{}, err
	}
	return tables, nil
}

func (s *Store) AppendBrand(ctx context.Context, brand models.Brand) error {
	return appendTab(ctx, s, brandCodec, brand)
}

func (s *Store) AppendFormulation(ctx context.Context, formulation models.Formulation) error {
	return appendTab(ctx, s, formulationCodec, formulation)
}

func (s *Store) AppendIngredient(ctx context.Context, ingredient models.Ingredient) error {
	return appendTab(ctx, s, ingredientCodec, ingredient)
}

func (s *Store) AppendFormulationIngredient(ctx context.Context, link models.FormulationIngredient) error {
	return appendTab(ctx, s, linkCodec, link)
}

// Seed writes tables into an empty workbook, used for demos and tests.
func (s *Store) Seed(ctx context.Context, tables kb.Tables) error {
	for _, b := range tables.Brands {
		if err := s.AppendBrand(ctx, b); err != nil {
			return err
		}
	}
	for _, f := range tables.Formulations {
		if err := s.AppendFormulation(ctx, f); err != nil {
			return err
		}
	}
	for _, i := range tables.Ingredients {
		if err := s.AppendIngredient(ctx, i); err != nil {
			return err
		}
	}
	for _, fi := range tables.FormulationIngredients {
		if err := s.AppendFormulationIngredient(ctx, fi); err != nil {
			return err
		}
	}
	return nil
}

// Diagnose lists the workbook tabs and, when the grid can describe itself,
// its backend and identity.
func (s *Store) Diagnose(ctx context.Context) (kb.Diagnostics, error) {
	diag := kb.Diagnostics{Backend: "sheet"}
	if d, ok := s.grid.(Describer); ok {
		backend, identifier, account := d.Describe()
		diag.Backend = backend
		diag.Identifier = kb.ShortIdentifier(identifier)
		diag.ServiceAccount = account
	}
	tabs, err := s.grid.Tabs(ctx)
	if err != nil {
		return diag, fmt.Errorf("list tabs: %w", err)
	}
	diag.Tables = tabs
	return diag, nil
}
