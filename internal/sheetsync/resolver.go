// Package sheetsync pulls student, attendance and course records out of
// external spreadsheets and upserts them into the database. The source
// sheets are maintained by hand in several competing formats, so every
// logical field is resolved through an ordered alias list rather than a
// fixed column position.
package sheetsync

import "strings"

// HeaderIndex maps trimmed, lowercased header text to its column
// index. The first occurrence of a duplicate header wins.
func HeaderIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return index
}

// Resolve walks aliases in priority order and returns the first
// non-blank value found in row, trimmed. Header matching is
// case-insensitive and exact; values come back verbatim apart from the
// trim. def is returned when no alias yields a value.
func Resolve(row []string, index map[string]int, aliases []string, def string) string {
	for _, alias := range aliases {
		idx, ok := index[strings.ToLower(alias)]
		if !ok || idx >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[idx]); v != "" {
			return v
		}
	}
	return def
}
