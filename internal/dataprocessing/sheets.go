package dataprocessing

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"epspulse/pkg/contracts/domain"
)

// LoadSheetGrid reads a Google Sheets range into a RawGrid using an API key.
// The range should cover the header row and all data rows (for example
// "Sheet1!A1:Z"). The sheet must be readable by anyone with the link.
func LoadSheetGrid(ctx context.Context, spreadsheetID, readRange, apiKey string) (domain.RawGrid, error) {
	svc, err := sheets.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return domain.RawGrid{}, fmt.Errorf("create sheets client: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return domain.RawGrid{}, fmt.Errorf("fetch range %q: %w", readRange, err)
	}
	if len(resp.Values) == 0 {
		return domain.RawGrid{}, fmt.Errorf("range %q is empty: no header row", readRange)
	}

	header := stringifyRow(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rows = append(rows, stringifyRow(row))
	}

	return domain.RawGrid{Headers: header, Rows: rows}, nil
}

// stringifyRow converts the API's untyped cell values to strings. Sheets
// returns cells as strings when valueRenderOption is FORMATTED_VALUE (the
// default), but numbers can still arrive as float64.
func stringifyRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		switch v := cell.(type) {
		case string:
			out[i] = v
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
