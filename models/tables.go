package models

// Table names double as spreadsheet tab titles.
const (
	TableBrands                 = "Brands"
	TableFormulations           = "Formulations"
	TableIngredients            = "Ingredients"
	TableFormulationIngredients = "Formulation_Ingredients"
)

// Headers lists the exact column headers seeded into each table, in order.
var Headers = map[string][]string{
	TableBrands:                 {"id", "name"},
	TableFormulations:           {"id", "name", "brand_id", "category", "product_type", "notes"},
	TableIngredients:            {"id", "inci_name", "common_name", "function", "cas"},
	TableFormulationIngredients: {"id", "formulation_id", "ingredient_id", "percentage", "phase", "notes"},
}

// TableOrder is the order tables are opened and exported in.
var TableOrder = []string{
	TableBrands,
	TableFormulations,
	TableIngredients,
	TableFormulationIngredients,
}

// NextID returns one more than the largest id, or 1 when no id is present.
// Missing ids are stored as zero and never win.
func NextID(ids ...int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
