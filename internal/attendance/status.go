// Package attendance holds the pure attendance logic: status
// classification, per-student aggregation and the date-variant handling
// used to match spreadsheet column headers against calendar dates.
package attendance

import "strings"

// Markers accepted by the source sheets. Matching is case-insensitive
// after trimming.
var (
	presentMarkers = map[string]struct{}{
		"P": {}, "PRESENT": {}, "1": {}, "YES": {}, "Y": {},
	}
	absentMarkers = map[string]struct{}{
		"A": {}, "ABSENT": {}, "0": {}, "NO": {}, "N": {},
	}
)

func IsPresent(raw string) bool {
	_, ok := presentMarkers[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}

func IsAbsent(raw string) bool {
	_, ok := absentMarkers[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}

// IsValid reports whether raw counts as a working day: any non-blank
// value, even one that is neither present nor absent.
func IsValid(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

// Normalize collapses recognized markers to "P"/"A" for storage.
// Unrecognized values pass through trimmed so nothing is lost.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case IsPresent(s):
		return "P"
	case IsAbsent(s):
		return "A"
	default:
		return s
	}
}
