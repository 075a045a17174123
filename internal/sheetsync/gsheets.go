package sheetsync

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads rows from the Google Sheets API using a service
// account key.
type SheetsSource struct {
	svc *sheets.Service
}

func NewSheetsSource(ctx context.Context, credentialsFile string) (*SheetsSource, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &SheetsSource{svc: svc}, nil
}

func (s *SheetsSource) Rows(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	effective := a1Range
	// A range without a tab reference applies to the first sheet.
	if !strings.Contains(a1Range, "!") {
		meta, err := s.svc.Spreadsheets.Get(spreadsheetID).
			Fields("sheets(properties(title))").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("read spreadsheet %q metadata: %w", spreadsheetID, err)
		}
		if len(meta.Sheets) == 0 {
			return nil, fmt.Errorf("spreadsheet %q has no sheets", spreadsheetID)
		}
		effective = meta.Sheets[0].Properties.Title + "!" + a1Range
	}

	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, effective).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %q from spreadsheet %q: %w", effective, spreadsheetID, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			if cell == nil {
				continue
			}
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
