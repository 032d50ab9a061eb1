package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/doorasi/closingbot/internal/domain/order"
)

// Client wraps the Sheets API for one spreadsheet. Construct it once at
// process start and derive Ledger/Roster views from it.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient authenticates against the Sheets API with a service-account
// credentials file.
func NewClient(ctx context.Context, spreadsheetID, credentialsFile string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Ledger returns a view over one worksheet.
func (c *Client) Ledger(sheetName string) Ledger {
	return &sheetLedger{client: c, sheetName: sheetName}
}

// Roster returns the agent registry view over one worksheet.
func (c *Client) Roster(sheetName string) Roster {
	return &sheetRoster{client: c, sheetName: sheetName}
}

type sheetLedger struct {
	client    *Client
	sheetName string
}

func (l *sheetLedger) AppendRow(ctx context.Context, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	_, err := l.client.svc.Spreadsheets.Values.
		Append(l.client.spreadsheetID, l.sheetName, &sheets.ValueRange{
			Values: [][]interface{}{cells},
		}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to %q: %w", l.sheetName, err)
	}
	return nil
}

func (l *sheetLedger) ReadAllRows(ctx context.Context) ([]order.Row, error) {
	resp, err := l.client.svc.Spreadsheets.Values.
		Get(l.client.spreadsheetID, l.sheetName).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading rows from %q: %w", l.sheetName, err)
	}

	if len(resp.Values) < 2 {
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	rows := make([]order.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make(order.Row, len(headers))
		for i, header := range headers {
			if i < len(raw) {
				row[header] = fmt.Sprint(raw[i])
			} else {
				// Trailing empty cells are omitted by the API.
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type sheetRoster struct {
	client    *Client
	sheetName string
}

// AgentCodes reads column B of the registry sheet, skipping the header.
func (r *sheetRoster) AgentCodes(ctx context.Context) ([]string, error) {
	resp, err := r.client.svc.Spreadsheets.Values.
		Get(r.client.spreadsheetID, r.sheetName+"!B2:B").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading agent codes from %q: %w", r.sheetName, err)
	}

	var codes []string
	for _, raw := range resp.Values {
		if len(raw) == 0 {
			continue
		}
		codes = append(codes, fmt.Sprint(raw[0]))
	}
	return codes, nil
}
