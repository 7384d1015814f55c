package pages

import (
	"context"

	"github.com/a-h/templ"

	"formulakb/internal/views/components"
)

// NewBrandOption is the brand selector entry that reveals the new brand field.
const NewBrandOption = "(new)"

// FormulationCategories are the categories offered by the entry form.
var FormulationCategories = []string{"Skincare", "Bodycare", "Haircare", "Decorative", "Fragrance", "Other"}

// SampleIngredients prefills the ingredient box.
const SampleIngredients = `Aqua | Water | Solvent | 60 | A
Sodium Laureth Sulfate | SLES | Surfactant | 10 | A
Cocamidopropyl Betaine | CAPB | Surfactant | 5 | A
Glycerin | Glycerin | Humectant | 3 | A`

// Form field names for the formulation form.
const (
	FieldName         = "name"
	FieldCategory     = "category"
	FieldProductType  = "product_type"
	FieldBrand        = "brand"
	FieldNewBrandName = "new_brand"
	FieldNotes        = "notes"
	FieldIngredients  = "ingredients"
)

// FormulationFormValues are the current form inputs.
type FormulationFormValues struct {
	Name         string
	Category     string
	ProductType  string
	Brand        string
	NewBrandName string
	Notes        string
	Ingredients  string
}

// DefaultFormulationValues is the blank form.
func DefaultFormulationValues() FormulationFormValues {
	return FormulationFormValues{
		Category:    "Bodycare",
		ProductType: "Body Wash",
		Brand:       NewBrandOption,
		Ingredients: SampleIngredients,
	}
}

// FormulationFormView feeds the formulation entry form.
type FormulationFormView struct {
	Brands  []string
	Values  FormulationFormValues
	Flashes []components.Flash
}

// FormulationForm renders the full entry page.
func FormulationForm(s Shell, v FormulationFormView) templ.Component {
	s.Active = SectionFormulation
	return Page(s, FormulationFormContent(v))
}

// FormulationFormContent renders the form alone.
func FormulationFormContent(v FormulationFormView) templ.Component {
	return components.Func(func(ctx context.Context, h *components.Writer) {
		heading(h, "2", "Add New Formulation")
		h.Render(ctx, components.Flashes(v.Flashes))
		h.Raw(`<form method="post" action="/formulations/new" hx-post="/formulations/new" hx-target="#workspace">`)
		h.Render(ctx, components.TextInput(FieldName, "Formulation Name", v.Values.Name, "e.g., BW Sensitive 2025-09"))
		h.Render(ctx, components.Select(components.SelectProps{
			Name:     FieldCategory,
			Label:    "Category",
			Options:  FormulationCategories,
			Selected: v.Values.Category,
		}))
		h.Render(ctx, components.TextInput(FieldProductType, "Product Type", v.Values.ProductType, ""))
		h.Render(ctx, components.Select(components.SelectProps{
			Name:     FieldBrand,
			Label:    "Brand",
			Options:  v.Brands,
			Selected: v.Values.Brand,
			Leading:  NewBrandOption,
		}))
		h.Render(ctx, components.TextInput(FieldNewBrandName, "If new brand, type name here", v.Values.NewBrandName, ""))
		h.Render(ctx, components.TextArea(FieldNotes, "Notes", v.Values.Notes, "", 3))
		caption(h, "Enter ingredient rows as text: INCI | Common | Function | % | Phase | Notes (one per line)")
		h.Render(ctx, components.TextArea(FieldIngredients, "Ingredients (one per line)", v.Values.Ingredients, "", 10))
		h.Raw(`<button type="submit">➕ Save formulation</button></form>`)
	})
}
