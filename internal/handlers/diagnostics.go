package handlers

import (
	"errors"
	"net/http"

	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/internal/views/pages"
)

var errNoDiagnostics = errors.New("store does not report diagnostics")

// Diagnostics probes the store connection and lists its tables.
func Diagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var view pages.DiagnosticsView
	diagnoser, ok := store.(kb.Diagnoser)
	if !ok {
		view.Err = errNoDiagnostics
	} else {
		view.Diagnostics, view.Err = diagnoser.Diagnose(r.Context())
	}
	if view.Err != nil {
		applog.Warn(r.Context(), "store diagnostics failed", "error", view.Err)
	}

	renderComponent(w, r, pick(r, pages.DiagnosticsContent(view), pages.Diagnostics(shellFor(r), view)))
}
