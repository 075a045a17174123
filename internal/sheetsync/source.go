package sheetsync

import (
	"context"
	"strings"
)

// RowSource yields tabular rows from an external source. The first row
// is the header row; cells are strings, blank for empty cells.
type RowSource interface {
	Rows(ctx context.Context, sourceID, a1Range string) ([][]string, error)
}

// SplitIDs splits a comma-separated spreadsheet ID list.
func SplitIDs(ids string) []string {
	var out []string
	for _, s := range strings.Split(ids, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
