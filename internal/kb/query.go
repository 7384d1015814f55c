package kb

import (
	"sort"
	"strings"

	"formulakb/internal/catalog"
	"formulakb/internal/recommend"
	"formulakb/models"
)

// Filter carries the browse selections. Empty fields and All match everything.
type Filter struct {
	Category    string `json:"category"`
	ProductType string `json:"product_type"`
	Brand       string `json:"brand"`
}

// Normalized maps the All sentinel to the empty string.
func (f Filter) Normalized() Filter {
	return Filter{
		Category:    normalizeFilterValue(f.Category),
		ProductType: normalizeFilterValue(f.ProductType),
		Brand:       normalizeFilterValue(f.Brand),
	}
}

func (f Filter) matchesScope(formulation models.Formulation) bool {
	if f.Category != "" && formulation.Category != f.Category {
		return false
	}
	if f.ProductType != "" && formulation.ProductType != f.ProductType {
		return false
	}
	return true
}

// FormulationRow is a formulation with its brand resolved for display.
type FormulationRow struct {
	models.Formulation
	Brand string `json:"brand"`
}

// brandIDsByName maps names to ids; a repeated name resolves to its last row.
func (s *Session) brandIDsByName() map[string]int64 {
	lookup := make(map[string]int64, s.Brands.Len())
	for _, brand := range s.Brands.List() {
		if brand.ID == 0 || brand.Name == "" {
			continue
		}
		lookup[brand.Name] = brand.ID
	}
	return lookup
}

// BrandNames maps brand ids to names.
func (s *Session) BrandNames() map[int64]string {
	lookup := make(map[int64]string, s.Brands.Len())
	for _, brand := range s.Brands.List() {
		if brand.ID == 0 || brand.Name == "" {
			continue
		}
		lookup[brand.ID] = brand.Name
	}
	return lookup
}

// FilterFormulations returns the formulations matching every active filter, in
// store order. A brand name that is not in the Brand table leaves the brand
// filter off.
func (s *Session) FilterFormulations(filter Filter) []FormulationRow {
	filter = filter.Normalized()

	var (
		brandID    int64
		byBrand    bool
		brandNames = s.BrandNames()
	)
	if filter.Brand != "" {
		brandID, byBrand = s.brandIDsByName()[filter.Brand]
	}

	rows := make([]FormulationRow, 0, s.Formulations.Len())
	for _, formulation := range s.Formulations.List() {
		if !filter.matchesScope(formulation) {
			continue
		}
		if byBrand && formulation.BrandID != brandID {
			continue
		}
		rows = append(rows, FormulationRow{
			Formulation: formulation,
			Brand:       brandNames[formulation.BrandID],
		})
	}
	return rows
}

// DetailLine is one ingredient row of a formulation, joined with the
// ingredient's metadata. Matched is false when the ingredient id is unknown.
type DetailLine struct {
	LinkID       int64  `json:"link_id"`
	IngredientID int64  `json:"ingredient_id"`
	INCI         string `json:"inci"`
	CommonName   string `json:"common_name"`
	Function     string `json:"function"`
	Percentage   string `json:"percentage"`
	Phase        string `json:"phase"`
	Notes        string `json:"notes"`
	Matched      bool   `json:"matched"`
}

// FormulationDetail lists the composition of one formulation.
type FormulationDetail struct {
	FormulationID int64        `json:"formulation_id"`
	Name          string       `json:"name"`
	Lines         []DetailLine `json:"lines"`
}

func (s *Session) ingredientsByID() map[int64]models.Ingredient {
	lookup := make(map[int64]models.Ingredient, s.Ingredients.Len())
	for _, ingredient := range s.Ingredients.List() {
		if ingredient.ID == 0 {
			continue
		}
		if _, exists := lookup[ingredient.ID]; !exists {
			lookup[ingredient.ID] = ingredient
		}
	}
	return lookup
}

// Details returns, for each requested formulation id in the given order, its
// ingredient rows in store order. Rows whose ingredient cannot be found keep
// their place with empty metadata.
func (s *Session) Details(ids []int64) []FormulationDetail {
	ingredients := s.ingredientsByID()
	names := make(map[int64]string, s.Formulations.Len())
	for _, formulation := range s.Formulations.List() {
		if _, exists := names[formulation.ID]; !exists {
			names[formulation.ID] = formulation.Name
		}
	}

	details := make([]FormulationDetail, 0, len(ids))
	for _, id := range ids {
		detail := FormulationDetail{FormulationID: id, Name: names[id], Lines: []DetailLine{}}
		for _, link := range s.FormulationIngredients.List() {
			if link.FormulationID != id {
				continue
			}
			line := DetailLine{
				LinkID:       link.ID,
				IngredientID: link.IngredientID,
				Percentage:   link.Percentage,
				Phase:        link.Phase,
				Notes:        link.Notes,
			}
			if ingredient, ok := ingredients[link.IngredientID]; ok {
				line.INCI = ingredient.INCIName
				line.CommonName = ingredient.CommonName
				line.Function = ingredient.Function
				line.Matched = true
			}
			detail.Lines = append(detail.Lines, line)
		}
		details = append(details, detail)
	}
	return details
}

// IngredientFrequency counts how many formulations use an ingredient.
type IngredientFrequency struct {
	IngredientID int64  `json:"ingredient_id"`
	INCI         string `json:"inci"`
	CommonName   string `json:"common_name"`
	Function     string `json:"function"`
	Count        int    `json:"count"`
}

// Frequency counts, per ingredient, the distinct formulations using it among
// those matching the category and product type. The brand filter does not
// apply here. Results are ordered by count descending, then INCI name.
func (s *Session) Frequency(filter Filter) []IngredientFrequency {
	filter = filter.Normalized()

	parents := make(map[int64]models.Formulation, s.Formulations.Len())
	for _, formulation := range s.Formulations.List() {
		if _, exists := parents[formulation.ID]; !exists {
			parents[formulation.ID] = formulation
		}
	}

	users := make(map[int64]map[int64]struct{})
	var order []int64
	for _, link := range s.FormulationIngredients.List() {
		// Links to unknown formulations carry no category or product type.
		parent := parents[link.FormulationID]
		if !filter.matchesScope(parent) {
			continue
		}
		if link.IngredientID == 0 {
			continue
		}
		set, ok := users[link.IngredientID]
		if !ok {
			set = make(map[int64]struct{})
			users[link.IngredientID] = set
			order = append(order, link.IngredientID)
		}
		if link.FormulationID != 0 {
			set[link.FormulationID] = struct{}{}
		}
	}

	ingredients := s.ingredientsByID()
	result := make([]IngredientFrequency, 0, len(order))
	for _, id := range order {
		ingredient := ingredients[id]
		result = append(result, IngredientFrequency{
			IngredientID: id,
			INCI:         ingredient.INCIName,
			CommonName:   ingredient.CommonName,
			Function:     ingredient.Function,
			Count:        len(users[id]),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		// Unmatched ingredients have no INCI and sort after named ones.
		if (result[i].INCI == "") != (result[j].INCI == "") {
			return result[j].INCI == ""
		}
		if result[i].INCI != result[j].INCI {
			return result[i].INCI < result[j].INCI
		}
		return result[i].IngredientID < result[j].IngredientID
	})
	return result
}

// SelectorOptions are the values offered by the browse selectors, without
// the All sentinel.
type SelectorOptions struct {
	Categories   []string `json:"categories"`
	ProductTypes []string `json:"product_types"`
	Brands       []string `json:"brands"`
}

// Options lists sorted distinct categories, product types and brand names.
// Product types are limited to the selected category when one is given.
func (s *Session) Options(category string) SelectorOptions {
	category = normalizeFilterValue(category)

	categories := newStringSet()
	productTypes := newStringSet()
	for _, formulation := range s.Formulations.List() {
		categories.add(formulation.Category)
		if category == "" || formulation.Category == category {
			productTypes.add(formulation.ProductType)
		}
	}

	brands := newStringSet()
	for _, brand := range s.Brands.List() {
		brands.add(brand.Name)
	}

	return SelectorOptions{
		Categories:   categories.sorted(),
		ProductTypes: productTypes.sorted(),
		Brands:       brands.sorted(),
	}
}

// Structure returns the typical structure guideline for the filter, falling
// back to Bodycare / Body Wash for unset selections.
func (s *Session) Structure(filter Filter) (catalog.Key, catalog.RuleSet, bool) {
	filter = filter.Normalized()
	key := catalog.StructureKey(filter.Category, filter.ProductType)
	rules, ok := s.catalog.Lookup(key.Category, key.ProductType)
	return key, rules, ok
}

// Recommend ranks the surfactant systems registered for target. The boolean
// is false when the target has no candidates.
func (s *Session) Recommend(target string, prefs recommend.Preferences) ([]recommend.Ranked, bool) {
	systems, ok := s.catalog.SystemsFor(target)
	if !ok {
		return nil, false
	}
	return recommend.Rank(systems, prefs), true
}

type stringSet map[string]struct{}

func newStringSet() stringSet {
	return make(stringSet)
}

func (s stringSet) add(value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	s[value] = struct{}{}
}

func (s stringSet) sorted() []string {
	values := make([]string, 0, len(s))
	for value := range s {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
