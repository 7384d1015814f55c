package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/api/option"

	"formulakb/internal/kb"
	"formulakb/internal/sheet"
	"formulakb/models"
)

// fakeSheets serves the subset of the Sheets REST API the grid uses.
type fakeSheets struct {
	mu    sync.Mutex
	order []string
	tabs  map[string][][]string
}

func tabFromRange(a1 string) string {
	if i := strings.LastIndex(a1, "!"); i >= 0 {
		a1 = a1[:i]
	}
	a1 = strings.TrimPrefix(strings.TrimSuffix(a1, "'"), "'")
	return strings.ReplaceAll(a1, "''", "'")
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const prefix = "/v4/spreadsheets/sheet-123"
	path := strings.TrimPrefix(r.URL.Path, prefix)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case path == "" && r.Method == http.MethodGet:
		var sheets []map[string]any
		for _, title := range f.order {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"title": title}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sheets": sheets})

	case path == ":batchUpdate":
		var req struct {
			Requests []struct {
				AddSheet struct {
					Properties struct {
						Title string `json:"title"`
					} `json:"properties"`
				} `json:"addSheet"`
			} `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, item := range req.Requests {
			title := item.AddSheet.Properties.Title
			f.order = append(f.order, title)
			f.tabs[title] = nil
		}
		_, _ = w.Write([]byte(`{}`))

	case strings.HasPrefix(path, "/values/"):
		a1 := strings.TrimPrefix(path, "/values/")
		appendCall := strings.HasSuffix(a1, ":append")
		a1 = strings.TrimSuffix(a1, ":append")
		tab := tabFromRange(a1)

		switch {
		case r.Method == http.MethodGet:
			rows := f.tabs[tab]
			if strings.HasSuffix(a1, "!1:1") && len(rows) > 0 {
				rows = rows[:1]
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"range": a1, "values": rows})
		default:
			var body struct {
				Values [][]string `json:"values"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if appendCall {
				f.tabs[tab] = append(f.tabs[tab], body.Values...)
			} else if len(f.tabs[tab]) == 0 {
				f.tabs[tab] = body.Values
			} else {
				f.tabs[tab][0] = body.Values[0]
			}
			_, _ = w.Write([]byte(`{}`))
		}

	default:
		http.NotFound(w, r)
	}
}

func newTestGrid(t *testing.T) (*Grid, *fakeSheets) {
	t.Helper()

	fake := &fakeSheets{tabs: map[string][][]string{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	grid, err := New(context.Background(), "sheet-123", "",
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return grid, fake
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), " ", ""); err == nil {
		t.Fatal("expected error for empty spreadsheet id")
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	if got := quote("Formulation_Ingredients"); got != "'Formulation_Ingredients'" {
		t.Fatalf("unexpected quote: %s", got)
	}
	if got := quote("Bob's"); got != "'Bob''s'" {
		t.Fatalf("unexpected quote: %s", got)
	}
}

func TestClientEmail(t *testing.T) {
	t.Parallel()

	if got := clientEmail(`{"client_email":"kb@example.iam.gserviceaccount.com"}`); got != "kb@example.iam.gserviceaccount.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if got := clientEmail("not json"); got != "" {
		t.Fatalf("expected empty email, got %q", got)
	}
}

func TestStoreOverSheetsAPI(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	grid, fake := newTestGrid(t)
	store, err := sheet.NewStore(grid)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	session, err := kb.Open(ctx, store)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if _, err := session.AddFormulation(ctx, kb.FormulationInput{
		Name:         "Body Wash A",
		Category:     "Bodycare",
		ProductType:  "Body Wash",
		NewBrand:     true,
		NewBrandName: "Acme",
		Ingredients:  "Aqua | Water | Solvent | 70",
	}); err != nil {
		t.Fatalf("AddFormulation returned error: %v", err)
	}

	fake.mu.Lock()
	brands := fake.tabs[models.TableBrands]
	fake.mu.Unlock()
	want := [][]string{{"id", "name"}, {"1", "Acme"}}
	if diff := cmp.Diff(want, brands); diff != "" {
		t.Fatalf("unexpected Brands tab (-want +got):\n%s", diff)
	}

	reloaded, err := kb.Open(ctx, store)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if got := reloaded.FilterFormulations(kb.Filter{Brand: "Acme"}); len(got) != 1 {
		t.Fatalf("expected one formulation for Acme, got %+v", got)
	}

	diag, err := store.Diagnose(ctx)
	if err != nil {
		t.Fatalf("Diagnose returned error: %v", err)
	}
	if diag.Backend != "google-sheets" || diag.Identifier != "sheet-…" || len(diag.Tables) != 4 {
		t.Fatalf("unexpected diagnostics %+v", diag)
	}
}
