// Command kbctl queries and edits the formulation knowledge base from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"formulakb/internal/backend"
	"formulakb/internal/config"
	"formulakb/internal/kb"
	applog "formulakb/internal/log"
)

// app carries the flag values and collaborators shared by every command.
type app struct {
	driver   string
	csvDir   string
	dbURL    string
	mockDB   bool
	logLevel string

	opener     backend.Opener
	loadConfig func(func(*config.Config)) (config.Config, error)
	now        func() time.Time
	stdin      io.Reader

	cfg    config.Config
	loaded bool
	store  kb.Store
	label  string
}

func newApp() *app {
	return &app{
		opener:     backend.Default(),
		loadConfig: config.LoadWith,
		now:        time.Now,
		stdin:      os.Stdin,
	}
}

func (a *app) config() (config.Config, error) {
	if a.loaded {
		return a.cfg, nil
	}
	cfg, err := a.loadConfig(func(c *config.Config) {
		if a.driver != "" {
			c.Store.Driver = a.driver
		}
		if a.csvDir != "" {
			c.Store.CSVDir = a.csvDir
		}
		if a.dbURL != "" {
			c.Store.Database.URL = a.dbURL
		}
		if a.mockDB {
			c.Store.Database.UseMock = true
		}
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	a.cfg, a.loaded = cfg, true
	return cfg, nil
}

func (a *app) openStore(ctx context.Context) (kb.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	opened, err := a.opener.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	a.store, a.label = opened.Store, opened.Label
	return a.store, nil
}

func (a *app) session(ctx context.Context) (*kb.Session, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	return kb.Open(ctx, store)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printNote(w io.Writer, note string) {
	fmt.Fprintln(w, mutedStyle.Render(note))
}

// printTable renders rows, or empty when there are none.
func printTable(w io.Writer, headers []string, rows [][]string, empty string) {
	if len(rows) == 0 {
		printNote(w, empty)
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "kbctl",
		Short:         "Query and edit the formulation knowledge base",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logLevel == "" {
				return nil
			}
			return applog.SetLevel(a.logLevel)
		},
	}

	root.PersistentFlags().StringVar(&a.driver, "driver", "", "Store driver: sheets, csv, sql or memory (default from KB_STORE_DRIVER)")
	root.PersistentFlags().StringVar(&a.csvDir, "csv-dir", "", "Directory for the csv driver (default from KB_CSV_DIR)")
	root.PersistentFlags().StringVar(&a.dbURL, "database-url", "", "Database URL for the sql driver (default from DATABASE_URL)")
	root.PersistentFlags().BoolVar(&a.mockDB, "mock-db", false, "Use the seeded in-memory database with the sql driver")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newFormulationsCmd(a),
		newDetailsCmd(a),
		newFrequencyCmd(a),
		newStructureCmd(a),
		newRecommendCmd(a),
		newAddFormulationCmd(a),
		newAddINCICmd(a),
		newDiagnoseCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newHashPasswordCmd(a),
	)
	return root
}

func main() {
	root := newRootCmd(newApp())
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
