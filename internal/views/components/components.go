// Package components holds the small building blocks shared by the pages.
package components

import (
	"context"

	"github.com/a-h/templ"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash is a one-shot message shown after a submission.
type Flash struct {
	Kind    string
	Message string
}

// Flashes renders messages in order.
func Flashes(flashes []Flash) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		for _, f := range flashes {
			h.Raw(`<div role="status"`)
			h.Class("flash", "flash-"+f.Kind)
			h.Attr("data-flash", f.Kind)
			h.Raw(">")
			h.Text(f.Message)
			h.Raw("</div>")
		}
	})
}

// Notice renders an informational callout.
func Notice(message string) templ.Component {
	return Flashes([]Flash{{Kind: FlashInfo, Message: message}})
}

// SelectProps configures a labelled select box.
type SelectProps struct {
	Name     string
	Label    string
	Options  []string
	Selected string
	// Leading is rendered first when set, e.g. "(All)" or "(new)".
	Leading string
	// Submit submits the enclosing form on change.
	Submit bool
}

func Select(p SelectProps) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		h.Raw(`<label class="field"><span>`)
		h.Text(p.Label)
		h.Raw(`</span><select`)
		h.Attrs(ctx, templ.OrderedAttributes{
			{Key: "name", Value: p.Name},
			{Key: "onchange", Value: templ.KV("this.form.requestSubmit()", p.Submit)},
		})
		h.Raw(">")
		options := p.Options
		if p.Leading != "" {
			options = append([]string{p.Leading}, options...)
		}
		for _, option := range options {
			h.Raw("<option")
			h.Attrs(ctx, templ.OrderedAttributes{
				{Key: "value", Value: option},
				{Key: "selected", Value: option == p.Selected},
			})
			h.Raw(">")
			h.Text(option)
			h.Raw("</option>")
		}
		h.Raw("</select></label>")
	})
}

// Checkbox renders a labelled checkbox posting value "on".
func Checkbox(name, label string, checked bool) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		h.Raw(`<label class="check"><input type="checkbox"`)
		h.Attrs(ctx, templ.OrderedAttributes{
			{Key: "name", Value: name},
			{Key: "value", Value: "on"},
			{Key: "checked", Value: checked},
		})
		h.Raw("> ")
		h.Text(label)
		h.Raw("</label>")
	})
}

// TextInput renders a labelled single-line input.
func TextInput(name, label, value, placeholder string) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		h.Raw(`<label class="field"><span>`)
		h.Text(label)
		h.Raw(`</span><input type="text"`)
		h.Attrs(ctx, templ.OrderedAttributes{
			{Key: "name", Value: name},
			{Key: "value", Value: value},
			{Key: "placeholder", Value: Optional(placeholder)},
		})
		h.Raw("></label>")
	})
}

// TextArea renders a labelled multi-line input.
func TextArea(name, label, value, placeholder string, rows int) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		h.Raw(`<label class="field"><span>`)
		h.Text(label)
		h.Raw(`</span><textarea`)
		h.Attrs(ctx, templ.OrderedAttributes{
			{Key: "name", Value: name},
			{Key: "rows", Value: rows},
			{Key: "placeholder", Value: Optional(placeholder)},
		})
		h.Raw(">")
		h.Text(value)
		h.Raw("</textarea></label>")
	})
}

// Table renders a plain data table; empty is shown when there are no rows.
func Table(headers []string, rows [][]string, empty string) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		if len(rows) == 0 && empty != "" {
			h.Raw(`<p class="empty">`)
			h.Text(empty)
			h.Raw("</p>")
			return
		}
		h.Raw(`<table class="data"><thead><tr>`)
		for _, header := range headers {
			h.Raw("<th>")
			h.Text(header)
			h.Raw("</th>")
		}
		h.Raw("</tr></thead><tbody>")
		for _, row := range rows {
			h.Raw("<tr>")
			for _, cell := range row {
				h.Raw("<td>")
				h.Text(cell)
				h.Raw("</td>")
			}
			h.Raw("</tr>")
		}
		h.Raw("</tbody></table>")
	})
}

// StatCard shows one headline number.
func StatCard(title, value, detail string) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		h.Raw(`<div class="stat-card"><p class="stat-title">`)
		h.Text(title)
		h.Raw(`</p><p class="stat-value">`)
		h.Text(value)
		h.Raw("</p>")
		if detail != "" {
			h.Raw(`<p class="stat-detail">`)
			h.Text(detail)
			h.Raw("</p>")
		}
		h.Raw("</div>")
	})
}

// SidebarLink is one navigation entry.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

// SidebarData lists the navigation and marks the active section.
type SidebarData struct {
	Active string
	Links  []SidebarLink
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

func Sidebar(data SidebarData) templ.Component {
	return Func(func(ctx context.Context, h *Writer) {
		h.Raw(`<nav class="sidebar"><ul>`)
		for _, link := range data.Links {
			h.Raw("<li><a")
			h.Href(link.Path)
			h.Attr("data-nav-section", link.Section)
			h.Attr("data-state", linkState(link.Section, data.Active))
			h.Raw(">")
			h.Text(link.Label)
			h.Raw("</a></li>")
		}
		h.Raw("</ul></nav>")
	})
}
