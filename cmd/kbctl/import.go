package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"formulakb/internal/kb"
	"formulakb/internal/sheet"
	"formulakb/internal/sheet/csvgrid"
	"formulakb/models"
)

// importCounts tallies the rows copied per table.
type importCounts struct {
	Brands, Formulations, Ingredients, Links int
}

func (c importCounts) total() int {
	return c.Brands + c.Formulations + c.Ingredients + c.Links
}

// idMap tracks, per table, which destination id a source id landed on.
type idMap map[int64]int64

// allocator hands out destination ids: the source id while it is free,
// otherwise one past the largest id seen.
type allocator struct {
	used map[int64]struct{}
	max  int64
}

func newAllocator[T any](rows []T, id func(T) int64) *allocator {
	a := &allocator{used: make(map[int64]struct{}, len(rows))}
	for _, row := range rows {
		a.take(id(row))
	}
	return a
}

func (a *allocator) take(id int64) {
	a.used[id] = struct{}{}
	if id > a.max {
		a.max = id
	}
}

func (a *allocator) assign(preferred int64) int64 {
	if _, taken := a.used[preferred]; preferred == 0 || taken {
		preferred = a.max + 1
	}
	a.take(preferred)
	return preferred
}

type linkKey struct {
	formulationID, ingredientID int64
	percentage, phase           string
}

func keyOf(link models.FormulationIngredient) linkKey {
	return linkKey{link.FormulationID, link.IngredientID, link.Percentage, link.Phase}
}

type formulationKey struct {
	name    string
	brandID int64
}

// importTables appends the source rows the destination does not hold yet.
// Rows are matched by identity rather than id: brands by name, ingredients by
// INCI name (case-insensitively), formulations by name and brand, links by
// their content. Appended rows keep their source id when it is free and are
// renumbered otherwise; references are rewritten to the destination ids, so
// a renumbered sheet can be imported and re-imported safely.
func importTables(ctx context.Context, src kb.Tables, dst kb.Store) (importCounts, error) {
	var counts importCounts
	current, err := dst.Load(ctx)
	if err != nil {
		return counts, fmt.Errorf("load destination: %w", err)
	}

	brandIDs := make(idMap, len(src.Brands))
	brandsByName := make(map[string]int64, len(current.Brands))
	for _, brand := range current.Brands {
		if _, ok := brandsByName[brand.Name]; !ok && brand.ID != 0 {
			brandsByName[brand.Name] = brand.ID
		}
	}
	brandAlloc := newAllocator(current.Brands, func(b models.Brand) int64 { return b.ID })
	for _, brand := range src.Brands {
		if brand.ID == 0 {
			continue
		}
		if id, ok := brandsByName[brand.Name]; ok {
			brandIDs[brand.ID] = id
			continue
		}
		sourceID := brand.ID
		brand.ID = brandAlloc.assign(sourceID)
		if err := dst.AppendBrand(ctx, brand); err != nil {
			return counts, fmt.Errorf("brand %d: %w", sourceID, err)
		}
		brandIDs[sourceID] = brand.ID
		brandsByName[brand.Name] = brand.ID
		counts.Brands++
	}

	ingredientIDs := make(idMap, len(src.Ingredients))
	ingredientsByName := make(map[string]int64, len(current.Ingredients))
	for _, ingredient := range current.Ingredients {
		key := models.INCIKey(ingredient.INCIName)
		if _, ok := ingredientsByName[key]; !ok && ingredient.ID != 0 {
			ingredientsByName[key] = ingredient.ID
		}
	}
	ingredientAlloc := newAllocator(current.Ingredients, func(i models.Ingredient) int64 { return i.ID })
	for _, ingredient := range src.Ingredients {
		if ingredient.ID == 0 {
			continue
		}
		key := models.INCIKey(ingredient.INCIName)
		if id, ok := ingredientsByName[key]; ok {
			ingredientIDs[ingredient.ID] = id
			continue
		}
		sourceID := ingredient.ID
		ingredient.ID = ingredientAlloc.assign(sourceID)
		if err := dst.AppendIngredient(ctx, ingredient); err != nil {
			return counts, fmt.Errorf("ingredient %q: %w", ingredient.INCIName, err)
		}
		ingredientIDs[sourceID] = ingredient.ID
		ingredientsByName[key] = ingredient.ID
		counts.Ingredients++
	}

	formulationIDs := make(idMap, len(src.Formulations))
	formulationsByKey := make(map[formulationKey]int64, len(current.Formulations))
	for _, formulation := range current.Formulations {
		key := formulationKey{formulation.Name, formulation.BrandID}
		if _, ok := formulationsByKey[key]; !ok && formulation.ID != 0 {
			formulationsByKey[key] = formulation.ID
		}
	}
	formulationAlloc := newAllocator(current.Formulations, func(f models.Formulation) int64 { return f.ID })
	for _, formulation := range src.Formulations {
		if formulation.ID == 0 {
			continue
		}
		if id, ok := brandIDs[formulation.BrandID]; ok {
			formulation.BrandID = id
		}
		key := formulationKey{formulation.Name, formulation.BrandID}
		if id, ok := formulationsByKey[key]; ok {
			formulationIDs[formulation.ID] = id
			continue
		}
		sourceID := formulation.ID
		formulation.ID = formulationAlloc.assign(sourceID)
		if err := dst.AppendFormulation(ctx, formulation); err != nil {
			return counts, fmt.Errorf("formulation %d: %w", sourceID, err)
		}
		formulationIDs[sourceID] = formulation.ID
		formulationsByKey[key] = formulation.ID
		counts.Formulations++
	}

	links := make(map[linkKey]struct{}, len(current.FormulationIngredients))
	for _, link := range current.FormulationIngredients {
		links[keyOf(link)] = struct{}{}
	}
	linkAlloc := newAllocator(current.FormulationIngredients, func(l models.FormulationIngredient) int64 { return l.ID })
	for _, link := range src.FormulationIngredients {
		if link.ID == 0 {
			continue
		}
		if id, ok := formulationIDs[link.FormulationID]; ok {
			link.FormulationID = id
		}
		if id, ok := ingredientIDs[link.IngredientID]; ok {
			link.IngredientID = id
		}
		key := keyOf(link)
		if _, ok := links[key]; ok {
			continue
		}
		sourceID := link.ID
		link.ID = linkAlloc.assign(sourceID)
		if err := dst.AppendFormulationIngredient(ctx, link); err != nil {
			return counts, fmt.Errorf("formulation ingredient %d: %w", sourceID, err)
		}
		links[key] = struct{}{}
		counts.Links++
	}
	return counts, nil
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-dir>",
		Short: "Copy rows from a directory of table CSVs into the configured store",
		Long: `Copy rows from a directory holding Brands.csv, Formulations.csv,
Ingredients.csv and Formulation_Ingredients.csv into the configured store.
Rows the store already holds are skipped and colliding ids are renumbered,
so the import can be re-run. The source directory is only read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if info, err := os.Stat(args[0]); err != nil || !info.IsDir() {
				return fmt.Errorf("source %s is not a directory", args[0])
			}
			grid, err := csvgrid.Open(args[0])
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			tables, err := sheet.Read(cmd.Context(), grid)
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			dst, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			counts, err := importTables(cmd.Context(), tables, dst)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d row(s) from %s\n", counts.total(), args[0])
			printTable(out, []string{"table", "rows"}, [][]string{
				{models.TableBrands, fmt.Sprint(counts.Brands)},
				{models.TableFormulations, fmt.Sprint(counts.Formulations)},
				{models.TableIngredients, fmt.Sprint(counts.Ingredients)},
				{models.TableFormulationIngredients, fmt.Sprint(counts.Links)},
			}, "")
			return err
		},
	}
}
