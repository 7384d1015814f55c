package pages

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"formulakb/internal/views/components"
	"formulakb/models"
)

// Form field names for the bulk ingredient form.
const (
	FieldRaw               = "inci_list"
	FieldDedup             = "dedup"
	FieldDefaultFunction   = "default_function"
	FieldDefaultCommonName = "default_common_name"
	FieldDocument          = "document"
)

// BulkFormValues are the current form inputs.
type BulkFormValues struct {
	Raw               string
	Dedup             bool
	DefaultFunction   string
	DefaultCommonName string
}

// DefaultBulkValues is the blank form.
func DefaultBulkValues() BulkFormValues {
	return BulkFormValues{Dedup: true}
}

// BulkFormView feeds the bulk ingredient form.
type BulkFormView struct {
	Values  BulkFormValues
	Flashes []components.Flash
	Added   []models.Ingredient
}

// BulkForm renders the full bulk import page.
func BulkForm(s Shell, v BulkFormView) templ.Component {
	s.Active = SectionBulk
	return Page(s, BulkFormContent(v))
}

// BulkFormContent renders the form alone.
func BulkFormContent(v BulkFormView) templ.Component {
	return components.Func(func(ctx context.Context, h *components.Writer) {
		heading(h, "2", "Bulk Add Ingredients · INCI List")
		h.Render(ctx, components.Flashes(v.Flashes))
		caption(h, "Paste a comma-separated or newline-separated list of INCI names. We'll add them to the Ingredients tab with auto IDs. Other columns (common_name, function, cas) can be filled later.")
		h.Raw(`<form method="post" action="/ingredients/bulk" enctype="multipart/form-data">`)
		h.Render(ctx, components.TextArea(FieldRaw, "INCI list (comma or newline separated)", v.Values.Raw,
			"Aqua, Dimethicone, Cyclopentasiloxane, Titanium Dioxide, Glycerin", 8))
		h.Raw(`<label class="field"><span>Or upload a PDF or text file with an INCI section</span>`)
		h.Raw(`<input type="file" accept=".pdf,.txt,.csv,application/pdf,text/plain,text/csv"`)
		h.Attr("name", FieldDocument)
		h.Raw("></label>")
		h.Render(ctx, components.Checkbox(FieldDedup, "De-duplicate before adding", v.Values.Dedup))
		h.Render(ctx, components.TextInput(FieldDefaultFunction, "Default Function (optional)", v.Values.DefaultFunction, ""))
		h.Render(ctx, components.TextInput(FieldDefaultCommonName, "Default Common Name (optional)", v.Values.DefaultCommonName, ""))
		h.Raw(`<button type="submit">➕ Add to Ingredients</button></form>`)

		if len(v.Added) == 0 {
			return
		}
		rows := make([][]string, 0, len(v.Added))
		for _, ingredient := range v.Added {
			rows = append(rows, []string{strconv.FormatInt(ingredient.ID, 10), ingredient.INCIName, ingredient.CommonName, ingredient.Function})
		}
		h.Raw(`<section id="added">`)
		heading(h, "3", "Added")
		h.Render(ctx, components.Table([]string{"id", "inci_name", "common_name", "function"}, rows, ""))
		h.Raw("</section>")
	})
}
