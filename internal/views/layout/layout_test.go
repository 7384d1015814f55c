package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"formulakb/internal/views/theme"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<main>content</main>"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Knowledge Base", sidebar, content, true, theme.Resolve(theme.DefaultKey)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Knowledge Base</title>") {
		t.Fatalf("expected document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "sidebar") || !strings.Contains(out, "content") {
		t.Fatalf("expected sidebar and content sections in output: %s", out)
	}
	if !strings.Contains(out, `class="theme-bench"`) {
		t.Fatalf("expected theme body class: %s", out)
	}
}

func TestLayoutOmitsSidebarWhenDisabled(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})

	var buf bytes.Buffer
	if err := Layout("Sign in", sidebar, nil, false, theme.Resolve("nocturne")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if strings.Contains(buf.String(), "<aside>") {
		t.Fatalf("expected sidebar to be omitted: %s", buf.String())
	}
}

func TestBodyWrapperClassReflectsSidebarState(t *testing.T) {
	if bodyWrapperClass(true) == bodyWrapperClass(false) {
		t.Fatal("expected different body wrapper class depending on sidebar state")
	}
	if mainClass(true) == mainClass(false) {
		t.Fatal("expected different main class depending on sidebar state")
	}
}
