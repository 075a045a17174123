package attendance

import (
	"strings"
	"time"
)

// The four header formats the source sheets are known to use.
var variantLayouts = [4]string{"2006-01-02", "02-01-2006", "02-Jan-2006", "02-Jan-06"}

// parseLayouts additionally accepts unpadded day/month, which sheet
// authors produce freely ("1-Jul-25").
var parseLayouts = []string{
	"2006-01-02", "02-01-2006", "02-Jan-2006", "02-Jan-06",
	"2006-1-2", "2-1-2006", "2-Jan-2006", "2-Jan-06",
}

// FormatVariants returns the lowercase textual representations of d in
// every accepted header format.
func FormatVariants(d time.Time) []string {
	out := make([]string, 0, len(variantLayouts))
	for _, layout := range variantLayouts {
		out = append(out, strings.ToLower(d.Format(layout)))
	}
	return out
}

// ParseMaybe tries the accepted formats in order and returns the first
// successful parse.
func ParseMaybe(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsDateHeader reports whether a column header parses as a calendar
// date and should therefore be treated as an attendance column.
func IsDateHeader(label string) bool {
	_, ok := ParseMaybe(label)
	return ok
}

// PickReportingVariants chooses which stored date label the daily
// absence reports should match against. Preference: today, if any
// stored label is one of today's variants; otherwise the latest
// parseable stored date that is not in the future; today again when
// nothing parses. labels are the distinct date values currently in the
// attendance store.
func PickReportingVariants(labels []string, today time.Time) []string {
	todayVariants := FormatVariants(today)
	seen := make(map[string]struct{}, len(labels))
	folded := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		folded = append(folded, l)
	}
	if len(folded) == 0 {
		return todayVariants
	}
	for _, v := range todayVariants {
		if _, ok := seen[v]; ok {
			return todayVariants
		}
	}
	todayDay := dateOnly(today)
	var latest, latestAny time.Time
	parsedAny := false
	for _, l := range folded {
		d, ok := ParseMaybe(l)
		if !ok {
			continue
		}
		d = dateOnly(d)
		parsedAny = true
		if d.After(latestAny) {
			latestAny = d
		}
		if !d.After(todayDay) && d.After(latest) {
			latest = d
		}
	}
	if !parsedAny {
		return todayVariants
	}
	if latest.IsZero() {
		latest = latestAny
	}
	return FormatVariants(latest)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
