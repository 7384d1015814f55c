package pages

import (
	"context"

	"github.com/a-h/templ"

	"formulakb/internal/views/components"
	"formulakb/internal/views/layout"
)

// Login renders the editor sign-in page.
func Login(s Shell, message string) templ.Component {
	return layout.Layout(AppTitle+" · Sign in", nil, LoginContent(message), false, s.Theme)
}

// LoginContent renders the sign-in form alone.
func LoginContent(message string) templ.Component {
	return components.Func(func(ctx context.Context, h *components.Writer) {
		heading(h, "2", "Sign in to edit")
		if message != "" {
			h.Render(ctx, components.Flashes([]components.Flash{{Kind: components.FlashError, Message: message}}))
		}
		h.Raw(`<form method="post" action="/login">`)
		h.Raw(`<label class="field"><span>Editor password</span><input type="password" name="password" autocomplete="current-password" required></label>`)
		h.Raw(`<button type="submit">Sign in</button></form>`)
	})
}
