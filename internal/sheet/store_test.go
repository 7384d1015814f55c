package sheet

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"formulakb/internal/kb"
	"formulakb/models"
)

func TestLoadSeedsHeadersOnNewWorkbook(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	grid := NewMemoryGrid()
	store, err := NewStore(grid)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	tables, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(tables.Brands)+len(tables.Formulations)+len(tables.Ingredients)+len(tables.FormulationIngredients) != 0 {
		t.Fatalf("expected empty tables, got %+v", tables)
	}

	for _, table := range models.TableOrder {
		header, err := grid.Header(ctx, table)
		if err != nil {
			t.Fatalf("Header(%s) returned error: %v", table, err)
		}
		if diff := cmp.Diff(models.Headers[table], header); diff != "" {
			t.Fatalf("unexpected header for %s (-want +got):\n%s", table, diff)
		}
	}
}

func TestLoadReseedsBlankHeader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	grid := NewMemoryGrid()
	if err := grid.AddTab(ctx, models.TableBrands); err != nil {
		t.Fatalf("AddTab returned error: %v", err)
	}
	if err := grid.SetHeader(ctx, models.TableBrands, []string{"", ""}); err != nil {
		t.Fatalf("SetHeader returned error: %v", err)
	}
	if err := grid.AppendRow(ctx, models.TableBrands, []string{"4", "Kept"}); err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}

	store, _ := NewStore(grid)
	tables, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff([]models.Brand{{ID: 4, Name: "Kept"}}, tables.Brands); diff != "" {
		t.Fatalf("unexpected brands (-want +got):\n%s", diff)
	}
}

func TestLoadCoercesNumericColumns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	grid := NewMemoryGrid()
	store, _ := NewStore(grid)
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	rows := [][]string{
		{"1", "7", "3", "10", "A", ""},
		{"2.0", "abc", "", "q.s.", "", "note"},
		{"", "", "", "", "", ""},
		{"x", "7.5", " 4 ", "1"},
	}
	for _, row := range rows {
		if err := grid.AppendRow(ctx, models.TableFormulationIngredients, row); err != nil {
			t.Fatalf("AppendRow returned error: %v", err)
		}
	}

	tables, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []models.FormulationIngredient{
		{ID: 1, FormulationID: 7, IngredientID: 3, Percentage: "10", Phase: "A"},
		{ID: 2, Percentage: "q.s.", Notes: "note"},
		{IngredientID: 4, Percentage: "1"},
	}
	if diff := cmp.Diff(want, tables.FormulationIngredients); diff != "" {
		t.Fatalf("unexpected links (-want +got):\n%s", diff)
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want int64
	}{
		{"12", 12},
		{" 3 ", 3},
		{"3.0", 3},
		{"3.5", 0},
		{"NaN", 0},
		{"", 0},
		{"id", 0},
	}
	for _, tt := range cases {
		if got := parseID(tt.raw); got != tt.want {
			t.Fatalf("parseID(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestAppendUsesCurrentHeaderOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	grid := NewMemoryGrid()
	if err := grid.AddTab(ctx, models.TableIngredients); err != nil {
		t.Fatalf("AddTab returned error: %v", err)
	}
	if err := grid.SetHeader(ctx, models.TableIngredients, []string{"inci_name", "id", "supplier"}); err != nil {
		t.Fatalf("SetHeader returned error: %v", err)
	}

	store, _ := NewStore(grid)
	if err := store.AppendIngredient(ctx, models.Ingredient{ID: 9, INCIName: "Aqua", CommonName: "Water"}); err != nil {
		t.Fatalf("AppendIngredient returned error: %v", err)
	}

	rows, _ := grid.Values(ctx, models.TableIngredients)
	if diff := cmp.Diff([]string{"Aqua", "9", ""}, rows[1]); diff != "" {
		t.Fatalf("unexpected row (-want +got):\n%s", diff)
	}
}

func TestSessionOverMemoryGrid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := NewStore(NewMemoryGrid())
	if err := store.Seed(ctx, kb.Tables{
		Brands:      []models.Brand{{ID: 1, Name: "Acme"}},
		Ingredients: []models.Ingredient{{ID: 1, INCIName: "Aqua"}},
	}); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	session, err := kb.Open(ctx, store)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	result, err := session.BulkAddIngredients(ctx, kb.BulkInput{Raw: "aqua, Glycerin", Dedup: true})
	if err != nil {
		t.Fatalf("BulkAddIngredients returned error: %v", err)
	}
	if len(result.Added) != 1 || result.Added[0].ID != 2 {
		t.Fatalf("unexpected added rows %+v", result.Added)
	}

	reloaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := len(reloaded.Ingredients); got != 2 {
		t.Fatalf("expected 2 ingredients after reload, got %d", got)
	}

	diag, err := store.Diagnose(ctx)
	if err != nil {
		t.Fatalf("Diagnose returned error: %v", err)
	}
	if diag.Backend != "memory" || len(diag.Tables) != len(models.TableOrder) {
		t.Fatalf("unexpected diagnostics %+v", diag)
	}
}

func TestReadLeavesWorkbookUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	grid := NewMemoryGrid()
	if err := grid.AddTab(ctx, models.TableBrands); err != nil {
		t.Fatalf("AddTab returned error: %v", err)
	}
	if err := grid.SetHeader(ctx, models.TableBrands, []string{"", ""}); err != nil {
		t.Fatalf("SetHeader returned error: %v", err)
	}
	if err := grid.AppendRow(ctx, models.TableBrands, []string{"4", "Kept"}); err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}

	tables, err := Read(ctx, grid)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if diff := cmp.Diff([]models.Brand{{ID: 4, Name: "Kept"}}, tables.Brands); diff != "" {
		t.Fatalf("unexpected brands (-want +got):\n%s", diff)
	}
	if len(tables.Formulations)+len(tables.Ingredients)+len(tables.FormulationIngredients) != 0 {
		t.Fatalf("expected missing tabs to read as empty, got %+v", tables)
	}

	tabs, _ := grid.Tabs(ctx)
	if diff := cmp.Diff([]string{models.TableBrands}, tabs); diff != "" {
		t.Fatalf("Read created tabs (-want +got):\n%s", diff)
	}
	header, _ := grid.Header(ctx, models.TableBrands)
	if diff := cmp.Diff([]string{"", ""}, header); diff != "" {
		t.Fatalf("Read rewrote the header (-want +got):\n%s", diff)
	}
}
