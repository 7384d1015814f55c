// Package layout renders the page shell around each view.
package layout

import (
	"context"

	"github.com/a-h/templ"

	"formulakb/internal/views/components"
	"formulakb/internal/views/theme"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0}
.theme-bench{background:#f7f7f4;color:#1d1d1b}
.theme-nocturne{background:#0f172a;color:#e2e8f0}
.wrapper{display:flex;min-height:100vh}
.sidebar{width:14rem;padding:1rem;border-right:1px solid #8884}
.sidebar ul{list-style:none;padding:0}
.sidebar a{display:block;padding:.4rem .6rem;border-radius:.4rem;color:inherit;text-decoration:none}
.sidebar a[data-state=active]{background:#8883;font-weight:600}
main{flex:1;padding:1.5rem;max-width:72rem}
main.full{max-width:none}
section{margin-bottom:2rem}
table.data{border-collapse:collapse;width:100%;font-size:.9rem}
table.data th,table.data td{border-bottom:1px solid #8884;padding:.3rem .5rem;text-align:left;vertical-align:top}
.field{display:flex;flex-direction:column;gap:.25rem;margin-bottom:.75rem}
.check{display:block;margin-bottom:.5rem}
textarea{font-family:ui-monospace,monospace}
.flash{padding:.6rem .8rem;border-radius:.4rem;margin-bottom:.75rem}
.flash-success{background:#d1fae5;color:#064e3b}
.flash-info{background:#dbeafe;color:#1e3a8a}
.flash-warning{background:#fef3c7;color:#78350f}
.flash-error{background:#fee2e2;color:#7f1d1d}
.stats{display:flex;gap:1rem}
.stat-card{border:1px solid #8884;border-radius:.5rem;padding:.6rem 1rem}
.stat-value{font-size:1.5rem;margin:.2rem 0}
.muted{opacity:.75}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(16rem,1fr));gap:1rem}
`

func bodyWrapperClass(withSidebar bool) string {
	if withSidebar {
		return "wrapper"
	}
	return "wrapper single"
}

func mainClass(withSidebar bool) string {
	if withSidebar {
		return "content"
	}
	return "content full"
}

// Layout renders a complete document around content.
func Layout(title string, sidebar, content templ.Component, withSidebar bool, t theme.Theme) templ.Component {
	return components.Func(func(ctx context.Context, h *components.Writer) {
		h.Raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw("<title>")
		h.Text(title)
		h.Raw("</title><style>", stylesheet, "</style>")
		h.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		h.Raw("</head><body")
		h.Class(t.BodyClass)
		h.Raw("><div")
		h.Class(bodyWrapperClass(withSidebar), t.ShellClass)
		h.Raw(">")
		if withSidebar {
			h.Render(ctx, sidebar)
		}
		h.Raw("<main")
		h.Class(mainClass(withSidebar))
		h.Raw(` id="workspace">`)
		h.Render(ctx, content)
		h.Raw("</main></div></body></html>")
	})
}
