package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"formulakb/internal/handlers"
	"formulakb/internal/metrics"
	"formulakb/internal/sheet"
	"formulakb/models"
)

func newMemoryStore(t *testing.T) *sheet.Store {
	t.Helper()
	store, err := sheet.NewStore(sheet.NewMemoryGrid())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.AppendBrand(context.Background(), models.Brand{ID: 1, Name: "Acme"}); err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	return store
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	cfg := Config{
		Addr:               ":8080",
		Session:            SessionConfig{CookieSecure: true},
		Store:              newMemoryStore(t),
		Backend:            "memory",
		EditorPasswordHash: string(hash),
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(handlers.Dependencies{})
	})

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	data := url.Values{}
	data.Set("password", "password123")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != "formulakb_session" {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure {
		t.Fatal("expected cookie secure flag to be true")
	}
}

func TestServerServesDashboardAndMetrics(t *testing.T) {
	m := metrics.New()
	srv, err := New(Config{
		Addr:    ":9090",
		Store:   m.InstrumentStore(newMemoryStore(t)),
		Backend: "memory",
		Metrics: m,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(handlers.Dependencies{})
	})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected dashboard 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Acme") {
		t.Fatalf("expected seeded brand in selectors")
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `formulakb_store_operations_total{op="load",result="ok",table="all"} 1`) {
		t.Fatalf("expected one counted load: %s", rr.Body.String())
	}
}

func TestEditorRoutesOpenWithoutPassword(t *testing.T) {
	srv, err := New(Config{Addr: ":9091", Store: newMemoryStore(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(handlers.Dependencies{})
	})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ingredients/bulk", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected bulk form without editor gate, got %d", rr.Code)
	}
}
