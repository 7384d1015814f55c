package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestLinkState(t *testing.T) {
	if got := linkState("bulk", "bulk"); got != "active" {
		t.Fatalf("expected active state when sections match, got %q", got)
	}
	if got := linkState("dashboard", "bulk"); got != "inactive" {
		t.Fatalf("expected inactive state when sections differ, got %q", got)
	}
}

func TestStatCardRendersValues(t *testing.T) {
	output := render(t, StatCard("Formulations", "12", "within filters"))
	for _, token := range []string{"Formulations", "12", "within filters"} {
		if !strings.Contains(output, token) {
			t.Fatalf("expected output to contain %q: %s", token, output)
		}
	}
}

func TestTableEscapesCells(t *testing.T) {
	output := render(t, Table([]string{"INCI"}, [][]string{{"<script>alert(1)</script>"}}, ""))
	if strings.Contains(output, "<script>") {
		t.Fatalf("expected cell content to be escaped: %s", output)
	}
	if !strings.Contains(output, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag: %s", output)
	}
}

func TestTableEmptyMessage(t *testing.T) {
	output := render(t, Table([]string{"INCI"}, nil, "Nothing here."))
	if !strings.Contains(output, "Nothing here.") || strings.Contains(output, "<table") {
		t.Fatalf("expected empty message only: %s", output)
	}
}

func TestSelectMarksSelectedAndLeading(t *testing.T) {
	output := render(t, Select(SelectProps{
		Name:     "brand",
		Label:    "Brand",
		Options:  []string{"Acme", "Birch"},
		Selected: "Birch",
		Leading:  "(All)",
	}))
	if !strings.Contains(output, `<option value="(All)">(All)</option>`) {
		t.Fatalf("expected leading option first: %s", output)
	}
	if !strings.Contains(output, `<option value="Birch" selected>`) {
		t.Fatalf("expected Birch to be selected: %s", output)
	}
}

func TestSidebarRendersActiveSection(t *testing.T) {
	output := render(t, Sidebar(SidebarData{
		Active: "bulk",
		Links:  []SidebarLink{{Label: "Bulk add", Path: "/ingredients/bulk", Section: "bulk"}},
	}))
	if !strings.Contains(output, `data-state="active"`) {
		t.Fatalf("expected active data-state attribute in sidebar output: %s", output)
	}
	if !strings.Contains(output, `data-nav-section="bulk"`) {
		t.Fatalf("expected data-nav-section attribute for active link: %s", output)
	}
}

func TestFlashesRenderKind(t *testing.T) {
	output := render(t, Flashes([]Flash{{Kind: FlashWarning, Message: "No INCI names detected."}}))
	if !strings.Contains(output, `data-flash="warning"`) || !strings.Contains(output, "No INCI names detected.") {
		t.Fatalf("unexpected flash output: %s", output)
	}
}

func TestSidebarSanitizesLinkTargets(t *testing.T) {
	output := render(t, Sidebar(SidebarData{
		Links: []SidebarLink{
			{Label: "Home", Path: "/", Section: "dashboard"},
			{Label: "Bad", Path: "javascript:alert(1)", Section: "bad"},
		},
	}))
	if !strings.Contains(output, `href="/"`) {
		t.Fatalf("expected relative link kept: %s", output)
	}
	if strings.Contains(output, "javascript:") || !strings.Contains(output, string(templ.FailedSanitizationURL)) {
		t.Fatalf("expected unsafe link to be replaced: %s", output)
	}
}

func TestInputsOmitEmptyPlaceholder(t *testing.T) {
	output := render(t, TextInput("name", "Name", `"quoted"`, ""))
	if strings.Contains(output, "placeholder") {
		t.Fatalf("expected no placeholder attribute: %s", output)
	}
	if !strings.Contains(output, `name="name" value="&#34;quoted&#34;"`) {
		t.Fatalf("expected ordered, escaped attributes: %s", output)
	}

	output = render(t, TextArea("notes", "Notes", "", "Optional", 4))
	if !strings.Contains(output, `name="notes" rows="4" placeholder="Optional"`) {
		t.Fatalf("expected textarea attributes in order: %s", output)
	}
}

func TestSelectSubmitsOnChangeOnlyWhenAsked(t *testing.T) {
	plain := render(t, Select(SelectProps{Name: "category", Label: "Category", Options: []string{"Bodycare"}}))
	if strings.Contains(plain, "onchange") {
		t.Fatalf("expected no onchange handler: %s", plain)
	}
	submitting := render(t, Select(SelectProps{Name: "category", Label: "Category", Options: []string{"Bodycare"}, Submit: true}))
	if !strings.Contains(submitting, `onchange="this.form.requestSubmit()"`) {
		t.Fatalf("expected onchange handler: %s", submitting)
	}
}

func TestWriterClassDropsDisabledNames(t *testing.T) {
	var buf bytes.Buffer
	h := NewWriter(&buf)
	h.Class("flash", templ.KV("flash-error", false), "flash-info", "flash")
	if err := h.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != ` class="flash flash-info"` {
		t.Fatalf("unexpected class attribute %q", got)
	}
}
