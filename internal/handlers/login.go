package handlers

import (
	"net/http"
	"strings"

	applog "formulakb/internal/log"
	"formulakb/internal/views/pages"
)

// Login renders the editor sign-in view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if editorHash == "" || editorSignedIn(r) {
			redirectTo(w, r, pages.SectionPath(pages.SectionFormulation))
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, message)
	case http.MethodPost:
		if sessionManager == nil || editorHash == "" {
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		password := r.PostFormValue("password")
		if strings.TrimSpace(password) == "" {
			renderLogin(w, r, "Password is required.")
			return
		}
		if !checkEditorPassword(password) {
			applog.Warn(r.Context(), "editor sign-in rejected")
			renderLogin(w, r, "Incorrect password. Please try again.")
			return
		}
		if err := sessionManager.RenewToken(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to renew session token", "error", err)
			renderLogin(w, r, "We were unable to sign you in. Please try again.")
			return
		}
		sessionManager.Put(r.Context(), sessionEditorKey, true)

		next := sessionManager.PopString(r.Context(), sessionReturnToKey)
		if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
			next = pages.SectionPath(pages.SectionFormulation)
		}
		applog.Info(r.Context(), "editor signed in")
		redirectTo(w, r, next)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, message string) {
	renderComponent(w, r, pick(r, pages.LoginContent(message), pages.Login(shellFor(r), message)))
}
