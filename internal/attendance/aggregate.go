package attendance

import "math"

// Stats is the per-student attendance summary returned by the report
// endpoints.
type Stats struct {
	TotalDays   int     `json:"total_days"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	Percentage  float64 `json:"attendance_average"`
}

// Aggregate computes lifetime stats from the raw status values of one
// student. Blank values are ignored entirely; unrecognized non-blank
// values count toward the total but toward neither present nor absent,
// so present+absent may be less than total.
func Aggregate(statuses []string) Stats {
	var st Stats
	for _, s := range statuses {
		if !IsValid(s) {
			continue
		}
		st.TotalDays++
		if IsPresent(s) {
			st.PresentDays++
		} else if IsAbsent(s) {
			st.AbsentDays++
		}
	}
	if st.TotalDays > 0 {
		pct := float64(st.PresentDays) / float64(st.TotalDays) * 100
		st.Percentage = math.Round(pct*100) / 100
	}
	return st
}
