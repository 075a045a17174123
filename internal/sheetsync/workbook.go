package sheetsync

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads the first worksheet of a local xlsx file. It is
// the fallback when the live spreadsheet cannot be reached.
type WorkbookSource struct {
	Path string
}

func (w *WorkbookSource) Rows(ctx context.Context, _, _ string) ([][]string, error) {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", w.Path, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", w.Path)
	}
	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("read workbook %q: %w", w.Path, err)
	}

	// Drop trailing all-blank rows left behind by editors.
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		blank := true
		for _, cell := range last {
			if cell != "" {
				blank = false
				break
			}
		}
		if !blank {
			break
		}
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}
