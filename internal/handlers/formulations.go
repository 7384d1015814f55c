package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/internal/metrics"
	"formulakb/internal/views/components"
	"formulakb/internal/views/pages"
)

const submissionFormulation = "formulation"

// FormulationForm shows the entry form on GET and saves a formulation on POST.
func FormulationForm(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		view := pages.FormulationFormView{Values: pages.DefaultFormulationValues()}
		session, err := openSession(r)
		if err != nil {
			applog.Error(r.Context(), "failed to load knowledge base", "error", err)
			view.Flashes = []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("Store connection failed: %v", err)}}
		} else {
			view.Brands = session.Options("").Brands
		}
		renderFormulationForm(w, r, view)
	case http.MethodPost:
		saveFormulation(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func formulationValuesFromRequest(r *http.Request) pages.FormulationFormValues {
	return pages.FormulationFormValues{
		Name:         r.PostFormValue(pages.FieldName),
		Category:     strings.TrimSpace(r.PostFormValue(pages.FieldCategory)),
		ProductType:  r.PostFormValue(pages.FieldProductType),
		Brand:        strings.TrimSpace(r.PostFormValue(pages.FieldBrand)),
		NewBrandName: r.PostFormValue(pages.FieldNewBrandName),
		Notes:        r.PostFormValue(pages.FieldNotes),
		Ingredients:  r.PostFormValue(pages.FieldIngredients),
	}
}

// formulationInput maps the form onto a submission. An empty brand choice
// counts as asking for a new brand.
func formulationInput(values pages.FormulationFormValues) kb.FormulationInput {
	newBrand := values.Brand == "" || values.Brand == pages.NewBrandOption
	input := kb.FormulationInput{
		Name:         values.Name,
		Category:     values.Category,
		ProductType:  values.ProductType,
		Notes:        values.Notes,
		NewBrand:     newBrand,
		NewBrandName: values.NewBrandName,
		Ingredients:  values.Ingredients,
	}
	if !newBrand {
		input.Brand = values.Brand
	}
	return input
}

func saveFormulation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "failed to parse formulation form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	values := formulationValuesFromRequest(r)
	view := pages.FormulationFormView{Values: values}

	submitMu.Lock()
	defer submitMu.Unlock()

	session, err := openSession(r)
	if err != nil {
		applog.Error(r.Context(), "failed to load knowledge base", "error", err)
		observeSubmission(submissionFormulation, metrics.OutcomeFailed)
		view.Flashes = []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("Failed to save: %v", err)}}
		renderFormulationForm(w, r, view)
		return
	}

	result, err := session.AddFormulation(r.Context(), formulationInput(values))
	view.Brands = session.Options("").Brands
	switch {
	case errors.Is(err, kb.ErrBrandNameRequired):
		observeSubmission(submissionFormulation, metrics.OutcomeInvalid)
		view.Flashes = []components.Flash{{Kind: components.FlashWarning, Message: "Please enter a new brand name."}}
	case errors.Is(err, kb.ErrUnknownBrand):
		observeSubmission(submissionFormulation, metrics.OutcomeInvalid)
		view.Flashes = []components.Flash{{Kind: components.FlashWarning, Message: fmt.Sprintf("Brand %q no longer exists. Pick another or create it.", values.Brand)}}
	case err != nil:
		applog.Error(r.Context(), "failed to save formulation", "error", err, "formulation_id", result.Formulation.ID)
		observeSubmission(submissionFormulation, metrics.OutcomeFailed)
		view.Flashes = []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("Failed to save: %v", err)}}
	default:
		observeSubmission(submissionFormulation, metrics.OutcomeSuccess)
		applog.Info(r.Context(), "formulation saved",
			"formulation_id", result.Formulation.ID,
			"brand_id", result.Brand.ID,
			"brand_created", result.BrandCreated,
			"links", len(result.Links),
			"new_ingredients", len(result.CreatedIngredients),
		)
		view.Values = pages.DefaultFormulationValues()
		view.Flashes = []components.Flash{
			{Kind: components.FlashSuccess, Message: fmt.Sprintf("Saved formulation '%s' and ingredients.", result.Formulation.Name)},
			{Kind: components.FlashInfo, Message: "Open the browse view to see the new rows."},
		}
	}
	renderFormulationForm(w, r, view)
}

func renderFormulationForm(w http.ResponseWriter, r *http.Request, view pages.FormulationFormView) {
	renderComponent(w, r, pick(r, pages.FormulationFormContent(view), pages.FormulationForm(shellFor(r), view)))
}
