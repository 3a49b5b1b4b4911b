// file: internal/badges/streak.go
package badges

import "time"

// CurrentStreak returns the number of consecutive calendar days ending at
// "now" with at least one activity timestamp. Days are server-local midnight
// boundaries. The walk starts at today's date, so a run that stopped
// yesterday counts as 0: today must be present for any non-zero streak.
func CurrentStreak(activity []time.Time, now time.Time) int {
	if len(activity) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(activity))
	for _, t := range activity {
		days[dayOf(t)] = true
	}

	streak := 0
	for day := dayOf(now); days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// dayOf truncates a timestamp to its server-local midnight
func dayOf(t time.Time) time.Time {
	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}
