package pages

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"formulakb/internal/catalog"
	"formulakb/internal/kb"
	"formulakb/internal/recommend"
	"formulakb/internal/views/components"
)

// FooterNotes are shown under the browse view.
var FooterNotes = []string{
	"Maintain unique integer IDs in each tab. This app auto-increments when writing.",
	"You can edit data directly in the spreadsheet; the app will read changes on refresh.",
	"Add more product rules by calling catalog.Register (e.g., Shampoo, Body Lotion, Sunscreen).",
}

// DashboardView is everything the browse view renders.
type DashboardView struct {
	Filter       kb.Filter
	Options      kb.SelectorOptions
	Formulations []kb.FormulationRow
	SelectedIDs  []int64
	Details      []kb.FormulationDetail
	Frequency    []kb.IngredientFrequency

	StructureKey catalog.Key
	Structure    catalog.RuleSet
	HasStructure bool

	Targets     []string
	Target      string
	Preferences recommend.Preferences
	Ranked      []recommend.Ranked
	HasRanking  bool

	Brands      int
	Ingredients int

	Flashes []components.Flash
}

// Dashboard renders the full browse page.
func Dashboard(s Shell, v DashboardView) templ.Component {
	s.Active = SectionDashboard
	return Page(s, DashboardContent(v))
}

// DashboardContent renders the browse view alone, for htmx swaps.
func DashboardContent(v DashboardView) templ.Component {
	return components.Func(func(ctx context.Context, h *components.Writer) {
		heading(h, "1", AppTitle)
		h.Render(ctx, components.Flashes(v.Flashes))

		h.Raw(`<form method="get" action="/" hx-get="/" hx-target="#workspace" hx-push-url="true">`)
		h.Raw(`<div class="grid"><section>`)
		filtersForm(ctx, h, v)
		h.Raw(`</section><section>`)
		recommenderForm(ctx, h, v)
		h.Raw(`</section></div>`)

		h.Raw(`<div class="stats">`)
		h.Render(ctx, components.StatCard("Formulations", strconv.Itoa(len(v.Formulations)), "within filters"))
		h.Render(ctx, components.StatCard("Ingredients", strconv.Itoa(v.Ingredients), "in catalogue"))
		h.Render(ctx, components.StatCard("Brands", strconv.Itoa(v.Brands), ""))
		h.Raw("</div>")

		h.Raw(`<section id="formulations">`)
		heading(h, "2", "Formulations")
		formulationsTable(ctx, h, v.Formulations, v.SelectedIDs)
		h.Raw(`<button type="submit">Show details</button>`)
		h.Raw("</section></form>")

		for _, detail := range v.Details {
			h.Raw(`<section class="detail"`)
			h.Attr("data-formulation-id", strconv.FormatInt(detail.FormulationID, 10))
			h.Raw(">")
			heading(h, "3", "Ingredients · Formulation ID "+strconv.FormatInt(detail.FormulationID, 10))
			if detail.Name != "" {
				caption(h, detail.Name)
			}
			h.Render(ctx, components.Table(
				[]string{"INCI", "Common", "Function", "Percent", "Phase", "Notes"},
				detailRows(detail),
				"No ingredient rows recorded for this formulation.",
			))
			h.Raw("</section>")
		}

		h.Raw(`<section id="frequency">`)
		heading(h, "2", "Ingredient Frequency (within current filters)")
		h.Render(ctx, components.Table(
			[]string{"INCI", "Common", "Function", "Count"},
			frequencyRows(v.Frequency),
			"No ingredient usage within the current filters.",
		))
		h.Raw("</section>")

		h.Raw(`<section id="structure">`)
		heading(h, "2", "Typical Ingredient List / Structure")
		if v.HasStructure {
			h.Raw("<p><strong>Base Structure (guideline)</strong> ")
			h.Text(v.StructureKey.Category + " / " + v.StructureKey.ProductType)
			h.Raw("</p>")
			h.Render(ctx, components.Table(
				[]string{"Component", "Function", "Typical Range"},
				structureRows(v.Structure),
				"",
			))
		} else {
			h.Render(ctx, components.Notice(catalog.NoRulesMessage))
		}
		h.Raw("</section>")

		h.Raw(`<section id="recommendations">`)
		heading(h, "2", "Recommended Surfactant Systems")
		if v.HasRanking {
			for _, ranked := range v.Ranked {
				h.Raw(`<details open class="system"`)
				h.Attr("data-score", strconv.Itoa(ranked.Score))
				h.Raw("><summary>")
				h.Text(SystemLabel(ranked.System.Name, ranked.System.Tags))
				h.Raw("</summary>")
				h.Render(ctx, components.Table(
					[]string{"INCI", "Role", "Range"},
					comboRows(ranked.System.Combo),
					"",
				))
				h.Raw("</details>")
			}
		} else {
			h.Render(ctx, components.Notice(catalog.RecommenderUnavailableMessage))
		}
		h.Raw("</section>")

		h.Raw(`<footer class="muted"><ul>`)
		for _, note := range FooterNotes {
			h.Raw("<li>")
			h.Text(note)
			h.Raw("</li>")
		}
		h.Raw("</ul></footer>")
	})
}

func filtersForm(ctx context.Context, h *components.Writer, v DashboardView) {
	heading(h, "2", "Filters")
	h.Render(ctx, components.Select(components.SelectProps{
		Name:     ParamCategory,
		Label:    "Category",
		Options:  v.Options.Categories,
		Selected: selectedOrAll(v.Filter.Category),
		Leading:  AllOption,
		Submit:   true,
	}))
	h.Render(ctx, components.Select(components.SelectProps{
		Name:     ParamProductType,
		Label:    "Product Type",
		Options:  v.Options.ProductTypes,
		Selected: selectedOrAll(v.Filter.ProductType),
		Leading:  AllOption,
		Submit:   true,
	}))
	h.Render(ctx, components.Select(components.SelectProps{
		Name:     ParamBrand,
		Label:    "Brand",
		Options:  v.Options.Brands,
		Selected: selectedOrAll(v.Filter.Brand),
		Leading:  AllOption,
		Submit:   true,
	}))
}

func recommenderForm(ctx context.Context, h *components.Writer, v DashboardView) {
	heading(h, "2", "Surfactant Recommender")
	h.Render(ctx, components.Select(components.SelectProps{
		Name:     ParamTarget,
		Label:    "Target product",
		Options:  v.Targets,
		Selected: v.Target,
		Submit:   true,
	}))
	h.Render(ctx, components.Checkbox(ParamSulfateFree, "Sulfate-free preference", v.Preferences.SulfateFree))
	h.Render(ctx, components.Checkbox(ParamMild, "Prioritize mildness", v.Preferences.Mild))
	h.Render(ctx, components.Checkbox(ParamHighFoam, "High Foam", v.Preferences.HighFoam))
	h.Raw(`<button type="submit">Apply</button>`)
}

func formulationsTable(ctx context.Context, h *components.Writer, rows []kb.FormulationRow, selected []int64) {
	if len(rows) == 0 {
		h.Raw(`<p class="empty">No formulations match the current filters.</p>`)
		return
	}
	chosen := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}
	h.Raw(`<p class="muted">Select formulation IDs to view details</p>`)
	h.Raw(`<table class="data"><thead><tr><th></th>`)
	for _, header := range []string{"id", "name", "brand", "category", "product_type", "notes"} {
		h.Raw("<th>")
		h.Text(header)
		h.Raw("</th>")
	}
	h.Raw("</tr></thead><tbody>")
	for _, row := range rows {
		h.Raw("<tr><td>")
		if row.ID != 0 {
			_, on := chosen[row.ID]
			h.Raw(`<input type="checkbox"`)
			h.Attrs(ctx, templ.OrderedAttributes{
				{Key: "name", Value: ParamIDs},
				{Key: "value", Value: row.ID},
				{Key: "checked", Value: on},
			})
			h.Raw(">")
		}
		h.Raw("</td>")
		for _, cell := range []string{FormatID(row.ID), row.Name, row.Brand, row.Category, row.ProductType, row.Notes} {
			h.Raw("<td>")
			h.Text(cell)
			h.Raw("</td>")
		}
		h.Raw("</tr>")
	}
	h.Raw("</tbody></table>")
}

func detailRows(detail kb.FormulationDetail) [][]string {
	rows := make([][]string, 0, len(detail.Lines))
	for _, line := range detail.Lines {
		rows = append(rows, []string{line.INCI, line.CommonName, line.Function, line.Percentage, line.Phase, line.Notes})
	}
	return rows
}

func frequencyRows(frequency []kb.IngredientFrequency) [][]string {
	rows := make([][]string, 0, len(frequency))
	for _, f := range frequency {
		rows = append(rows, []string{f.INCI, f.CommonName, f.Function, strconv.Itoa(f.Count)})
	}
	return rows
}

func structureRows(rules catalog.RuleSet) [][]string {
	rows := make([][]string, 0, len(rules.BaseStructure))
	for _, row := range rules.BaseStructure {
		rows = append(rows, []string{row.Component, row.Function, row.TypicalRange})
	}
	return rows
}

func comboRows(combo []catalog.ComboEntry) [][]string {
	rows := make([][]string, 0, len(combo))
	for _, entry := range combo {
		rows = append(rows, []string{entry.INCI, entry.Role, entry.Range})
	}
	return rows
}

// NewDashboardView runs the browse queries for the request parameters.
// A product type or brand no longer offered by the selectors resets to all.
func NewDashboardView(session *kb.Session, q url.Values) DashboardView {
	filter := FilterFromQuery(q)
	options := session.Options(filter.Category)
	if filter.Category != "" && !contains(options.Categories, filter.Category) {
		filter.Category = ""
		options = session.Options("")
	}
	if filter.ProductType != "" && !contains(options.ProductTypes, filter.ProductType) {
		filter.ProductType = ""
	}
	if filter.Brand != "" && !contains(options.Brands, filter.Brand) {
		filter.Brand = ""
	}

	v := DashboardView{
		Filter:       filter,
		Options:      options,
		Formulations: session.FilterFormulations(filter),
		SelectedIDs:  IDsFromQuery(q),
		Frequency:    session.Frequency(filter),
		Targets:      session.Catalog().RecommenderTargets(),
		Preferences:  PreferencesFromQuery(q),
		Brands:       session.Brands.Len(),
		Ingredients:  session.Ingredients.Len(),
	}
	v.Details = session.Details(v.SelectedIDs)
	v.StructureKey, v.Structure, v.HasStructure = session.Structure(filter)
	v.Target = TargetFromQuery(q, v.Targets)
	v.Ranked, v.HasRanking = session.Recommend(v.Target, v.Preferences)
	return v
}
