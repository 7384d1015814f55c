// Package csvgrid keeps a workbook as a directory of CSV files, one file per tab.
package csvgrid

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"formulakb/internal/sheet"
)

const ext = ".csv"

// Grid is a sheet.Grid over a local directory.
type Grid struct {
	dir string
	mu  sync.Mutex
}

// Open returns a grid rooted at dir, creating the directory when needed.
func Open(dir string) (*Grid, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("csv directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create csv directory: %w", err)
	}
	return &Grid{dir: dir}, nil
}

// Dir is the workbook directory.
func (g *Grid) Dir() string {
	return g.dir
}

func (g *Grid) path(tab string) (string, error) {
	if tab == "" || tab != filepath.Base(tab) || strings.ContainsAny(tab, `/\`) {
		return "", fmt.Errorf("invalid tab name %q", tab)
	}
	return filepath.Join(g.dir, tab+ext), nil
}

func (g *Grid) Tabs(context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, fmt.Errorf("read csv directory: %w", err)
	}
	var tabs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		tabs = append(tabs, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(tabs)
	return tabs, nil
}

func (g *Grid) AddTab(_ context.Context, title string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	path, err := g.path(title)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return file.Close()
}

func (g *Grid) readAll(tab string) ([][]string, error) {
	path, err := g.path(tab)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", sheet.ErrTabNotFound, tab)
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

func (g *Grid) Values(_ context.Context, tab string) ([][]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.readAll(tab)
}

func (g *Grid) Header(_ context.Context, tab string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err := g.readAll(tab)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// SetHeader rewrites the file through a temporary file so readers never see
// a truncated tab.
func (g *Grid) SetHeader(_ context.Context, tab string, header []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err := g.readAll(tab)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		rows = [][]string{header}
	} else {
		rows[0] = header
	}

	path, _ := g.path(tab)
	tmp, err := os.CreateTemp(g.dir, "."+tab+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (g *Grid) AppendRow(_ context.Context, tab string, row []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	path, err := g.path(tab)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", sheet.ErrTabNotFound, tab)
		}
		return err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(row); err != nil {
		file.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return file.Close()
}

func (g *Grid) Describe() (string, string, string) {
	return "csv", g.dir, ""
}
