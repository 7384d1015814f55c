package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthReportsBackend(t *testing.T) {
	withTestDependencies(t, "")

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		w := httptest.NewRecorder()
		Health(w, httptest.NewRequest(method, "/healthz", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", method, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("%s: content type = %q", method, ct)
		}
		if method == http.MethodHead {
			continue
		}

		var resp healthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode health: %v", err)
		}
		if resp.Status != "ok" || resp.Backend != "memory" {
			t.Fatalf("unexpected health %+v", resp)
		}
		if resp.Time.IsZero() {
			t.Fatal("expected a timestamp")
		}
	}
}
