package badges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStreak_EmptyActivity(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)
	assert.Equal(t, 0, CurrentStreak(nil, now))
	assert.Equal(t, 0, CurrentStreak([]time.Time{}, now))
}

func TestCurrentStreak_ConsecutiveRunEndingToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)
	activity := []time.Time{
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -1),
		now,
	}

	// Activity on {today, today-1, today-2}, nothing on today-3.
	assert.Equal(t, 3, CurrentStreak(activity, now))
}

func TestCurrentStreak_NoActivityTodayCountsZero(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	activity := []time.Time{
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -1),
	}

	// The run ended yesterday; today must be present to count.
	assert.Equal(t, 0, CurrentStreak(activity, now))
}

func TestCurrentStreak_GapBreaksTheWalk(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, time.Local)
	activity := []time.Time{
		now,
		now.AddDate(0, 0, -1),
		// gap at today-2
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -4),
	}

	assert.Equal(t, 2, CurrentStreak(activity, now))
}

func TestCurrentStreak_MultipleTimestampsPerDayDeduplicate(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)
	activity := []time.Time{
		time.Date(2025, 6, 15, 1, 0, 0, 0, time.Local),
		time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local),
		time.Date(2025, 6, 15, 23, 0, 0, 0, time.Local),
		time.Date(2025, 6, 14, 8, 0, 0, 0, time.Local),
	}

	assert.Equal(t, 2, CurrentStreak(activity, now))
}

func TestCurrentStreak_SingleActivityToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 1, 0, time.Local)
	assert.Equal(t, 1, CurrentStreak([]time.Time{now}, now))
}
