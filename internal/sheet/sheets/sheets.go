// Package sheets implements sheet.Grid on a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	applog "formulakb/internal/log"
)

// New tabs get this many rows and columns.
const (
	newTabRows    = 1000
	newTabColumns = 20
)

// Grid talks to one spreadsheet. The underlying service is safe for
// concurrent use.
type Grid struct {
	service       *gsheets.Service
	spreadsheetID string
	account       string
}

// New authenticates with the service-account JSON key and returns a grid
// for spreadsheetID. Extra client options are appended after the
// credentials.
func New(ctx context.Context, spreadsheetID, credentialsJSON string, opts ...option.ClientOption) (*Grid, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, fmt.Errorf("spreadsheet id must not be empty")
	}
	clientOpts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if credentialsJSON != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	grid := &Grid{
		service:       service,
		spreadsheetID: spreadsheetID,
		account:       clientEmail(credentialsJSON),
	}
	applog.Debug(ctx, "sheets client ready", "spreadsheet", spreadsheetID, "account", grid.account)
	return grid, nil
}

func clientEmail(credentialsJSON string) string {
	var key struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal([]byte(credentialsJSON), &key); err != nil {
		return ""
	}
	return key.ClientEmail
}

// quote formats a tab title for A1 notation.
func quote(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

func (g *Grid) Tabs(ctx context.Context) ([]string, error) {
	spreadsheet, err := g.service.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet: %w", err)
	}
	tabs := make([]string, 0, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil {
			tabs = append(tabs, s.Properties.Title)
		}
	}
	return tabs, nil
}

func (g *Grid) AddTab(ctx context.Context, title string) error {
	request := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: title,
					GridProperties: &gsheets.GridProperties{
						RowCount:    newTabRows,
						ColumnCount: newTabColumns,
					},
				},
			},
		}},
	}
	if _, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetID, request).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", title, err)
	}
	return nil
}

func (g *Grid) get(ctx context.Context, a1 string) ([][]string, error) {
	resp, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, a1).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s: %w", a1, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows, nil
}

func (g *Grid) Values(ctx context.Context, tab string) ([][]string, error) {
	return g.get(ctx, quote(tab))
}

func (g *Grid) Header(ctx context.Context, tab string) ([]string, error) {
	rows, err := g.get(ctx, quote(tab)+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func toCells(row []string) [][]interface{} {
	cells := make([]interface{}, len(row))
	for i, value := range row {
		cells[i] = value
	}
	return [][]interface{}{cells}
}

func (g *Grid) SetHeader(ctx context.Context, tab string, header []string) error {
	_, err := g.service.Spreadsheets.Values.Update(g.spreadsheetID, quote(tab)+"!A1", &gsheets.ValueRange{Values: toCells(header)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header %s: %w", tab, err)
	}
	return nil
}

func (g *Grid) AppendRow(ctx context.Context, tab string, row []string) error {
	_, err := g.service.Spreadsheets.Values.Append(g.spreadsheetID, quote(tab)+"!A1", &gsheets.ValueRange{Values: toCells(row)}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row %s: %w", tab, err)
	}
	return nil
}

func (g *Grid) Describe() (string, string, string) {
	return "google-sheets", g.spreadsheetID, g.account
}
