package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	applog "formulakb/internal/log"
)

const (
	sessionEditorKey       = "auth:editor"
	sessionLoginMessageKey = "auth:message"
	sessionReturnToKey     = "auth:return"
)

// HashPassword produces the bcrypt hash expected in KB_EDITOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkEditorPassword(password string) bool {
	if editorHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(editorHash), []byte(password)) == nil
}

func editorSignedIn(r *http.Request) bool {
	if sessionManager == nil {
		return false
	}
	return sessionManager.GetBool(r.Context(), sessionEditorKey)
}

// RequireEditor guards the data-entry routes when an editor password is
// configured. Without one every visitor may edit.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if editorHash == "" || editorSignedIn(r) {
			next.ServeHTTP(w, r)
			return
		}
		applog.Debug(r.Context(), "editor sign-in required", "path", r.URL.Path)
		if sessionManager != nil {
			sessionManager.Put(r.Context(), sessionReturnToKey, r.URL.Path)
		}
		redirectTo(w, r, "/login")
	})
}

// Logout ends the editor session and returns to the browse view.
func Logout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}

	redirectTo(w, r, "/")
}

func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
