package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Theme contains the class names applied to the page shell.
type Theme struct {
	Key        string
	BodyClass  string
	ShellClass string
	PanelClass string
	MutedClass string
}

const (
	// DefaultKey defines the fallback theme when no preference is stored.
	DefaultKey = "bench"
)

var catalogue = map[string]Theme{
	"bench": {
		Key:        "bench",
		BodyClass:  "theme-bench",
		ShellClass: "shell light",
		PanelClass: "panel",
		MutedClass: "muted",
	},
	"nocturne": {
		Key:        "nocturne",
		BodyClass:  "theme-nocturne",
		ShellClass: "shell dark",
		PanelClass: "panel",
		MutedClass: "muted",
	},
}

var options = []Option{
	{Value: "bench", Label: "Bench (Light)"},
	{Value: "nocturne", Label: "Nocturne (Dark)"},
}

// Resolve returns the registered theme for key, falling back to the default.
func Resolve(key string) Theme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Valid reports whether key names a registered theme.
func Valid(key string) bool {
	_, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
