package handlers

import (
	"fmt"
	"net/http"

	applog "formulakb/internal/log"
	"formulakb/internal/views/components"
	"formulakb/internal/views/pages"
)

// Dashboard renders the browse view: filters, formulation details, ingredient
// frequency, the structure guideline and the surfactant recommender.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var view pages.DashboardView
	session, err := openSession(r)
	if err != nil {
		applog.Error(r.Context(), "failed to load knowledge base", "error", err)
		view.Flashes = []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("Store connection failed: %v", err)}}
	} else {
		view = pages.NewDashboardView(session, r.URL.Query())
	}

	renderComponent(w, r, pick(r, pages.DashboardContent(view), pages.Dashboard(shellFor(r), view)))
}
