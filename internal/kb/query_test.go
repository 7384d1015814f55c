package kb

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"formulakb/internal/recommend"
)

func formulationIDs(rows []FormulationRow) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func TestFilterFormulations(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(sampleTables())

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "no filter", filter: Filter{}, want: []int64{1, 2, 3}},
		{name: "all sentinel", filter: Filter{Category: All, ProductType: All, Brand: All}, want: []int64{1, 2, 3}},
		{name: "category", filter: Filter{Category: "Bodycare"}, want: []int64{1, 2}},
		{name: "category and type", filter: Filter{Category: "Skincare", ProductType: "Facial Cleanser"}, want: []int64{3}},
		{name: "brand", filter: Filter{Brand: "Acme"}, want: []int64{1, 3}},
		{name: "brand and category", filter: Filter{Category: "Bodycare", Brand: "Verdant"}, want: []int64{2}},
		{name: "unknown brand is ignored", filter: Filter{Brand: "Nobody"}, want: []int64{1, 2, 3}},
		{name: "no match", filter: Filter{Category: "Haircare"}, want: []int64{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := formulationIDs(session.FilterFormulations(tc.filter))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterFormulationsResolvesBrandNames(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	tables.Formulations = append(tables.Formulations, Formulation4())
	session, _ := newTestSession(tables)

	rows := session.FilterFormulations(Filter{})
	if rows[0].Brand != "Acme" {
		t.Fatalf("expected Acme, got %q", rows[0].Brand)
	}
	if last := rows[len(rows)-1]; last.Brand != "" {
		t.Fatalf("expected unresolved brand to be empty, got %q", last.Brand)
	}
}

func TestDetailsKeepsRequestOrderAndUnmatchedRows(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	tables.FormulationIngredients = append(tables.FormulationIngredients,
		linkRow(6, 2, 99, "1"),
	)
	session, _ := newTestSession(tables)

	details := session.Details([]int64{2, 1})
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}
	if details[0].FormulationID != 2 || details[1].FormulationID != 1 {
		t.Fatalf("unexpected order: %d, %d", details[0].FormulationID, details[1].FormulationID)
	}

	gentle := details[0]
	if len(gentle.Lines) != 2 {
		t.Fatalf("expected 2 lines for formulation 2, got %d", len(gentle.Lines))
	}
	if !gentle.Lines[0].Matched || gentle.Lines[0].INCI != "Aqua" {
		t.Fatalf("expected first line to be Aqua, got %+v", gentle.Lines[0])
	}
	unmatched := gentle.Lines[1]
	if unmatched.Matched || unmatched.INCI != "" || unmatched.Percentage != "1" {
		t.Fatalf("expected unmatched line with kept percentage, got %+v", unmatched)
	}

	daily := details[1]
	if got := len(daily.Lines); got != 3 {
		t.Fatalf("expected 3 lines for formulation 1, got %d", got)
	}
}

func TestDetailsUnknownFormulation(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(sampleTables())
	details := session.Details([]int64{42})
	if len(details) != 1 || len(details[0].Lines) != 0 {
		t.Fatalf("expected one empty detail, got %+v", details)
	}
}

func TestFrequencyCountsDistinctFormulations(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(sampleTables())

	got := session.Frequency(Filter{Category: "Bodycare"})
	if len(got) != 2 {
		t.Fatalf("expected 2 ingredients, got %+v", got)
	}
	// Aqua appears three times across formulations 1 and 2.
	if got[0].INCI != "Aqua" || got[0].Count != 2 {
		t.Fatalf("expected Aqua counted in 2 formulations, got %+v", got[0])
	}
	if got[1].INCI != "Glycerin" || got[1].Count != 1 {
		t.Fatalf("expected Glycerin counted once, got %+v", got[1])
	}
}

func TestFrequencyIgnoresBrand(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(sampleTables())

	withBrand := session.Frequency(Filter{Category: "Bodycare", Brand: "Verdant"})
	without := session.Frequency(Filter{Category: "Bodycare"})
	if diff := cmp.Diff(without, withBrand); diff != "" {
		t.Fatalf("brand filter changed frequency (-want +got):\n%s", diff)
	}
}

func TestFrequencyTieBreaksByINCI(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(sampleTables())

	got := session.Frequency(Filter{})
	var names []string
	for _, row := range got {
		names = append(names, row.INCI)
	}
	want := []string{"Aqua", "Coco-Glucoside", "Glycerin"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestFrequencyPlacesUnmatchedIngredientsLastOnTies(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	tables.FormulationIngredients = append(tables.FormulationIngredients, linkRow(6, 3, 99, "1"))
	session, _ := newTestSession(tables)

	var ids []int64
	for _, row := range session.Frequency(Filter{}) {
		ids = append(ids, row.IngredientID)
	}
	if diff := cmp.Diff([]int64{1, 3, 2, 99}, ids); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestFrequencyDropsMissingIngredientIDs(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	tables.FormulationIngredients = append(tables.FormulationIngredients, linkRow(6, 2, 0, ""))
	session, _ := newTestSession(tables)

	for _, row := range session.Frequency(Filter{}) {
		if row.IngredientID == 0 {
			t.Fatalf("expected missing ingredient ids to be dropped, got %+v", row)
		}
	}
}

func TestOptionsCascadeByCategory(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	tables.Formulations = append(tables.Formulations, Formulation4())
	session, _ := newTestSession(tables)

	all := session.Options(All)
	want := SelectorOptions{
		Categories:   []string{"Bodycare", "Skincare"},
		ProductTypes: []string{"Body Wash", "Facial Cleanser"},
		Brands:       []string{"Acme", "Verdant"},
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}

	skincare := session.Options("Skincare")
	if diff := cmp.Diff([]string{"Facial Cleanser"}, skincare.ProductTypes); diff != "" {
		t.Fatalf("unexpected product types (-want +got):\n%s", diff)
	}
}

func TestStructureDefaults(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(sampleTables())

	key, rules, ok := session.Structure(Filter{Category: All, ProductType: All})
	if !ok {
		t.Fatalf("expected default structure to be registered")
	}
	if key.Category != "Bodycare" || key.ProductType != "Body Wash" {
		t.Fatalf("unexpected default key %+v", key)
	}
	if len(rules.BaseStructure) == 0 {
		t.Fatalf("expected base structure rows")
	}

	if _, _, ok := session.Structure(Filter{Category: "Haircare", ProductType: "Shampoo"}); ok {
		t.Fatalf("expected unregistered key to be reported missing")
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(sampleTables())

	ranked, ok := session.Recommend("Body Wash", recommend.Preferences{SulfateFree: true, Mild: true})
	if !ok || len(ranked) == 0 {
		t.Fatalf("expected Body Wash candidates")
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Fatalf("ranking not descending at %d: %+v", i, ranked)
		}
	}

	if _, ok := session.Recommend("Facial Cleanser", recommend.Preferences{}); ok {
		t.Fatalf("expected no candidates for Facial Cleanser")
	}
}
