package sheet

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryGrid is a Grid held in process memory. It is safe for concurrent use.
type MemoryGrid struct {
	mu    sync.Mutex
	order []string
	tabs  map[string][][]string
}

// NewMemoryGrid returns an empty workbook.
func NewMemoryGrid() *MemoryGrid {
	return &MemoryGrid{tabs: make(map[string][][]string)}
}

func (g *MemoryGrid) Tabs(context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.order), nil
}

func (g *MemoryGrid) AddTab(_ context.Context, title string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.tabs[title]; exists {
		return fmt.Errorf("tab %q already exists", title)
	}
	g.tabs[title] = nil
	g.order = append(g.order, title)
	return nil
}

func (g *MemoryGrid) Values(_ context.Context, tab string) ([][]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTabNotFound, tab)
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out, nil
}

func (g *MemoryGrid) Header(_ context.Context, tab string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTabNotFound, tab)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return slices.Clone(rows[0]), nil
}

func (g *MemoryGrid) SetHeader(_ context.Context, tab string, header []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tabs[tab]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTabNotFound, tab)
	}
	if len(rows) == 0 {
		g.tabs[tab] = [][]string{slices.Clone(header)}
		return nil
	}
	rows[0] = slices.Clone(header)
	return nil
}

func (g *MemoryGrid) AppendRow(_ context.Context, tab string, row []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tabs[tab]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTabNotFound, tab)
	}
	g.tabs[tab] = append(rows, slices.Clone(row))
	return nil
}

func (g *MemoryGrid) Describe() (string, string, string) {
	return "memory", "in-process", ""
}
