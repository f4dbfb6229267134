package leave

import "time"

// BusinessDays counts the weekdays in [start, end], both endpoints inclusive.
// It walks the range one calendar day at a time so month and year rollovers
// are handled exactly.
func BusinessDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
