package sheet

import (
	"math"
	"strconv"
	"strings"

	"formulakb/internal/kb"
	"formulakb/models"
)

// record is one row keyed by header name.
type record map[string]string

func newRecord(header, row []string) record {
	rec := make(record, len(header))
	for idx, key := range header {
		if key == "" || idx >= len(row) {
			continue
		}
		rec[key] = row[idx]
	}
	return rec
}

// blank reports whether every cell of the row is empty.
func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func (r record) text(key string) string {
	return r[key]
}

// id coerces a numeric column. Unparseable or empty values become 0,
// the missing id.
func (r record) id(key string) int64 {
	return parseID(r[key])
}

func parseID(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
		return parsed
	}
	// Spreadsheets often render whole numbers as "3.0".
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed != math.Trunc(parsed) {
		return 0
	}
	return int64(parsed)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// row lays the record out in header order; unknown columns stay empty.
func (r record) row(header []string) []string {
	out := make([]string, len(header))
	for idx, key := range header {
		out[idx] = r[key]
	}
	return out
}

// codec converts one table's model to and from records.
type codec[T any] struct {
	table  string
	decode func(record) T
	encode func(T) record
}

var brandCodec = codec[models.Brand]{
	table: models.TableBrands,
	decode: func(r record) models.Brand {
		return models.Brand{ID: r.id("id"), Name: r.text("name")}
	},
	encode: func(b models.Brand) record {
		return record{"id": formatID(b.ID), "name": b.Name}
	},
}

var formulationCodec = codec[models.Formulation]{
	table: models.TableFormulations,
	decode: func(r record) models.Formulation {
		return models.Formulation{
			ID:          r.id("id"),
			Name:        r.text("name"),
			BrandID:     r.id("brand_id"),
			Category:    r.text("category"),
			ProductType: r.text("product_type"),
			Notes:       r.text("notes"),
		}
	},
	encode: func(f models.Formulation) record {
		return record{
			"id":           formatID(f.ID),
			"name":         f.Name,
			"brand_id":     formatID(f.BrandID),
			"category":     f.Category,
			"product_type": f.ProductType,
			"notes":        f.Notes,
		}
	},
}

var ingredientCodec = codec[models.Ingredient]{
	table: models.TableIngredients,
	decode: func(r record) models.Ingredient {
		return models.Ingredient{
			ID:         r.id("id"),
			INCIName:   r.text("inci_name"),
			CommonName: r.text("common_name"),
			Function:   r.text("function"),
			CAS:        r.text("cas"),
		}
	},
	encode: func(i models.Ingredient) record {
		return record{
			"id":          formatID(i.ID),
			"inci_name":   i.INCIName,
			"common_name": i.CommonName,
			"function":    i.Function,
			"cas":         i.CAS,
		}
	},
}

var linkCodec = codec[models.FormulationIngredient]{
	table: models.TableFormulationIngredients,
	decode: func(r record) models.FormulationIngredient {
		return models.FormulationIngredient{
			ID:            r.id("id"),
			FormulationID: r.id("formulation_id"),
			IngredientID:  r.id("ingredient_id"),
			Percentage:    r.text("percentage"),
			Phase:         r.text("phase"),
			Notes:         r.text("notes"),
		}
	},
	encode: func(fi models.FormulationIngredient) record {
		return record{
			"id":             formatID(fi.ID),
			"formulation_id": formatID(fi.FormulationID),
			"ingredient_id":  formatID(fi.IngredientID),
			"percentage":     fi.Percentage,
			"phase":          fi.Phase,
			"notes":          fi.Notes,
		}
	},
}

func encodeAll[T any](c codec[T], values []T) [][]string {
	header := models.Headers[c.table]
	rows := make([][]string, 0, len(values)+1)
	rows = append(rows, header)
	for _, value := range values {
		rows = append(rows, c.encode(value).row(header))
	}
	return rows
}

// Rows renders every table as a header row followed by its records, keyed by
// table name.
func Rows(tables kb.Tables) map[string][][]string {
	return map[string][][]string{
		models.TableBrands:                 encodeAll(brandCodec, tables.Brands),
		models.TableFormulations:           encodeAll(formulationCodec, tables.Formulations),
		models.TableIngredients:            encodeAll(ingredientCodec, tables.Ingredients),
		models.TableFormulationIngredients: encodeAll(linkCodec, tables.FormulationIngredients),
	}
}
