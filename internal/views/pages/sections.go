package pages

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"formulakb/internal/views/components"
	"formulakb/internal/views/layout"
	"formulakb/internal/views/theme"
)

// Workspace sections reachable from the sidebar.
const (
	SectionDashboard   = "dashboard"
	SectionFormulation = "formulation"
	SectionBulk        = "bulk"
	SectionDiagnostics = "diagnostics"
)

// DefaultSection is used when the requested section is unknown.
const DefaultSection = SectionDashboard

// AppTitle heads every page.
const AppTitle = "🧪 Formulation Knowledge Base"

var sectionPaths = map[string]string{
	SectionDashboard:   "/",
	SectionFormulation: "/formulations/new",
	SectionBulk:        "/ingredients/bulk",
	SectionDiagnostics: "/diagnostics",
}

// NavLinks lists the sidebar entries in display order.
func NavLinks() []components.SidebarLink {
	return []components.SidebarLink{
		{Label: "Browse", Path: sectionPaths[SectionDashboard], Section: SectionDashboard},
		{Label: "Add Formulation", Path: sectionPaths[SectionFormulation], Section: SectionFormulation},
		{Label: "Bulk Add Ingredients", Path: sectionPaths[SectionBulk], Section: SectionBulk},
		{Label: "Diagnostics", Path: sectionPaths[SectionDiagnostics], Section: SectionDiagnostics},
	}
}

// ValidSection reports whether section names a known workspace section.
func ValidSection(section string) bool {
	_, ok := sectionPaths[section]
	return ok
}

// NormalizeSection lower-cases section and falls back to DefaultSection.
func NormalizeSection(section string) string {
	normalized := strings.ToLower(strings.TrimSpace(section))
	if ValidSection(normalized) {
		return normalized
	}
	return DefaultSection
}

// SectionPath returns the route serving section.
func SectionPath(section string) string {
	return sectionPaths[NormalizeSection(section)]
}

// Shell is the per-request chrome around a page.
type Shell struct {
	Theme   theme.Theme
	Active  string
	Backend string
	// EditorGate is set when data entry requires signing in.
	EditorGate bool
	SignedIn   bool
}

// Title combines the application title with the store backend label.
func (s Shell) Title() string {
	if s.Backend == "" {
		return AppTitle
	}
	return AppTitle + " · " + s.Backend
}

func sidebar(s Shell) templ.Component {
	return components.Func(func(ctx context.Context, h *components.Writer) {
		h.Render(ctx, components.Sidebar(components.SidebarData{
			Active: NormalizeSection(s.Active),
			Links:  NavLinks(),
		}))
		h.Raw(`<form class="sidebar" method="post" action="/preferences/theme">`)
		options := theme.Options()
		values := make([]string, 0, len(options))
		for _, option := range options {
			values = append(values, option.Value)
		}
		h.Render(ctx, components.Select(components.SelectProps{
			Name:     "theme",
			Label:    "Theme",
			Options:  values,
			Selected: s.Theme.Key,
			Submit:   true,
		}))
		h.Raw("</form>")
		if !s.EditorGate {
			return
		}
		h.Raw(`<div class="sidebar">`)
		if s.SignedIn {
			h.Raw(`<form method="post" action="/logout"><button type="submit">Sign out</button></form>`)
		} else {
			h.Raw(`<a href="/login">Sign in to edit</a>`)
		}
		h.Raw("</div>")
	})
}

// Page wraps content in the full document with the sidebar.
func Page(s Shell, content templ.Component) templ.Component {
	return layout.Layout(s.Title(), sidebar(s), content, true, s.Theme)
}

func heading(h *components.Writer, level, text string) {
	h.Raw("<h", level, ">")
	h.Text(text)
	h.Raw("</h", level, ">")
}

func caption(h *components.Writer, text string) {
	h.Raw(`<p class="muted">`)
	h.Text(text)
	h.Raw("</p>")
}
