package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// freezeFields limits the UpdateSheetProperties call to the frozen
// pane counts so no other sheet property is clobbered.
const freezeFields = "gridProperties.frozenRowCount,gridProperties.frozenColumnCount"

// Client wraps the Sheets v4 service with the operations the sync
// runner needs: ensure a worksheet exists, replace its contents, and
// freeze leading rows/columns.
type Client struct {
	svc *sheets.Service
}

// NewClient builds a Sheets client authenticated with a service
// account credentials file.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %v", err)
	}

	return &Client{svc: svc}, nil
}

// EnsureWorksheet returns the numeric sheet ID of the named worksheet,
// creating the worksheet when the spreadsheet does not have it yet.
// Creating instead of failing keeps a typo in worksheet_name from
// requiring manual spreadsheet surgery before a rerun.
func (c *Client) EnsureWorksheet(ctx context.Context, spreadsheetID, name string) (int64, error) {
	spreadsheet, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to open spreadsheet %s: %v", spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return sheet.Properties.SheetId, nil
		}
	}

	resp, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to create worksheet %q: %v", name, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("failed to create worksheet %q: empty reply", name)
	}

	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// Replace clears the worksheet and writes the grid starting at A1.
func (c *Client) Replace(ctx context.Context, spreadsheetID, name string, values [][]interface{}) error {
	if _, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, worksheetRange(name), &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear worksheet %q: %v", name, err)
	}

	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, worksheetRange(name)+"!A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write worksheet %q: %v", name, err)
	}

	return nil
}

// Freeze pins the given number of leading rows and columns.
func (c *Client) Freeze(ctx context.Context, spreadsheetID string, sheetID, rows, cols int64) error {
	_, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount:    rows,
						FrozenColumnCount: cols,
					},
				},
				Fields: freezeFields,
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to freeze panes: %v", err)
	}

	return nil
}

// worksheetRange quotes a worksheet title for use in an A1 range.
func worksheetRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
