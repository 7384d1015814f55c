package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer emits HTML, remembering the first write error so rendering code can
// stay linear.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (h *Writer) Raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

// Text writes escaped text.
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (h *Writer) Attr(name, value string) {
	h.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Attrs writes attributes in order, the way a templ spread does: false
// booleans and nil pointers are left out.
func (h *Writer) Attrs(ctx context.Context, attrs templ.OrderedAttributes) {
	if h.err != nil {
		return
	}
	h.err = templ.RenderAttributes(ctx, h.w, attrs)
}

// Class writes a class attribute built with templ.Classes.
func (h *Writer) Class(classes ...any) {
	h.Attr("class", templ.Classes(classes...).String())
}

// Href writes a link target, replacing unsafe schemes with templ's
// failed-sanitization URL.
func (h *Writer) Href(url string) {
	h.Attr("href", string(templ.URL(url)))
}

// Optional returns nil for an empty value so Attrs drops the attribute.
func Optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Render writes a nested component.
func (h *Writer) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func (h *Writer) Err() error {
	return h.err
}

// Func adapts a rendering function into a component.
func Func(render func(ctx context.Context, h *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		render(ctx, h)
		return h.Err()
	})
}
