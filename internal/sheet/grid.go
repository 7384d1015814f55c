// Package sheet stores the knowledge base in a workbook of tabs, one tab per
// table with a header row followed by records.
package sheet

import (
	"context"
	"errors"
)

// ErrTabNotFound is returned by grids for operations on a missing tab.
var ErrTabNotFound = errors.New("tab not found")

// Grid is a workbook of named tabs holding rows of cell text.
type Grid interface {
	Tabs(ctx context.Context) ([]string, error)
	AddTab(ctx context.Context, title string) error
	// Values returns every row of the tab, header included. Trailing empty
	// rows may be omitted.
	Values(ctx context.Context, tab string) ([][]string, error)
	// Header returns the first row of the tab, empty when the tab has no rows.
	Header(ctx context.Context, tab string) ([]string, error)
	// SetHeader overwrites the first row of the tab.
	SetHeader(ctx context.Context, tab string, header []string) error
	AppendRow(ctx context.Context, tab string, row []string) error
}

// Describer is implemented by grids that can identify their backend for
// diagnostics.
type Describer interface {
	Describe() (backend, identifier, account string)
}
