package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"formulakb/internal/kb"
	"formulakb/internal/views/components"
)

// DiagnosticsView is the result of probing the store.
type DiagnosticsView struct {
	Diagnostics kb.Diagnostics
	Err         error
}

// DiagnosticsLines renders the probe as the lines shown to the user.
func DiagnosticsLines(v DiagnosticsView) []components.Flash {
	if v.Err != nil {
		return []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("Store connection failed: %v", v.Err)}}
	}
	d := v.Diagnostics
	return []components.Flash{
		{Kind: components.FlashInfo, Message: fmt.Sprintf("Backend: %s; identifier: %s", d.Backend, kb.ShortIdentifier(d.Identifier))},
		{Kind: components.FlashInfo, Message: "Service account: " + ServiceAccountLabel(d.ServiceAccount)},
		{Kind: components.FlashSuccess, Message: fmt.Sprintf("Opened store. Tabs: %v", d.Tables)},
	}
}

// Diagnostics renders the full diagnostics page.
func Diagnostics(s Shell, v DiagnosticsView) templ.Component {
	s.Active = SectionDiagnostics
	return Page(s, DiagnosticsContent(v))
}

// DiagnosticsContent renders the probe result alone.
func DiagnosticsContent(v DiagnosticsView) templ.Component {
	return components.Func(func(ctx context.Context, h *components.Writer) {
		heading(h, "2", "Diagnostics")
		h.Render(ctx, components.Flashes(DiagnosticsLines(v)))
	})
}
