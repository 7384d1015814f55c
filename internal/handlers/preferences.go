package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	applog "formulakb/internal/log"
	"formulakb/internal/views/theme"
)

type preferencesResponse struct {
	Theme string `json:"theme"`
}

// UpdatePreferences stores the theme choice in the visitor's session.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	themeValue := strings.TrimSpace(r.FormValue("theme"))
	if !theme.Valid(themeValue) {
		applog.Debug(r.Context(), "received invalid theme selection", "value", themeValue)
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}
	themeConfig := theme.Resolve(themeValue)

	if sessionManager != nil {
		sessionManager.Put(r.Context(), sessionThemeKey, themeConfig.Key)
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(preferencesResponse{Theme: themeConfig.Key}); err != nil {
			applog.Error(r.Context(), "failed to encode preferences response", "error", err)
		}
		return
	}
	http.Redirect(w, r, sameSiteReferer(r), http.StatusSeeOther)
}

// sameSiteReferer returns the referring path on this host, or "/".
func sameSiteReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
