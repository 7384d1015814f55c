package handlers

import (
	"fmt"
	"net/http"
	"sync"

	templpkg "github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"

	"formulakb/internal/catalog"
	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/internal/metrics"
	"formulakb/internal/views/pages"
	"formulakb/internal/views/theme"
)

const sessionThemeKey = "preferences:theme"

// Dependencies are the shared collaborators of the HTTP handlers.
type Dependencies struct {
	Sessions *scs.SessionManager
	Store    kb.Store
	Metrics  *metrics.Metrics
	Catalog  *catalog.Registry
	// EditorPasswordHash gates the data-entry forms when set.
	EditorPasswordHash string
	// Backend labels the store in the page title.
	Backend string
}

var (
	sessionManager *scs.SessionManager
	store          kb.Store
	recorder       *metrics.Metrics
	registry       *catalog.Registry
	editorHash     string
	backendLabel   string

	// submitMu serialises submissions so id allocation from max+1 does not
	// race within this process.
	submitMu sync.Mutex
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(deps Dependencies) {
	sessionManager = deps.Sessions
	store = deps.Store
	recorder = deps.Metrics
	registry = deps.Catalog
	editorHash = deps.EditorPasswordHash
	backendLabel = deps.Backend
}

// openSession reads the store afresh so external edits show up on every request.
func openSession(r *http.Request) (*kb.Session, error) {
	if store == nil {
		return nil, fmt.Errorf("store not configured")
	}
	return kb.Open(r.Context(), store, kb.WithCatalog(registry))
}

func observeSubmission(kind, outcome string) {
	if recorder == nil {
		return
	}
	recorder.ObserveSubmission(kind, outcome)
}

func currentTheme(r *http.Request) theme.Theme {
	if sessionManager == nil {
		return theme.Resolve("")
	}
	return theme.Resolve(sessionManager.GetString(r.Context(), sessionThemeKey))
}

func shellFor(r *http.Request) pages.Shell {
	return pages.Shell{
		Theme:      currentTheme(r),
		Backend:    backendLabel,
		EditorGate: editorHash != "",
		SignedIn:   editorSignedIn(r),
	}
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// pick renders the partial for htmx requests and the full page otherwise.
func pick(r *http.Request, partial, full templpkg.Component) templpkg.Component {
	if isHTMX(r) {
		return partial
	}
	return full
}
