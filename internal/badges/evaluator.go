// file: internal/badges/evaluator.go
package badges

import (
	"math"
	"strings"
	"time"

	"dsavault/internal/models"
)

// Evaluation is the outcome of checking one requirement against a user's
// problem history.
type Evaluation struct {
	Satisfied bool `json:"satisfied"`
	Progress  int  `json:"progress"` // 0..100, always 100 when satisfied
	Metric    int  `json:"metric"`   // the observed value the rule counted
}

// Evaluate runs the rule for one requirement over the owner's full problem
// snapshot. It is pure: the same inputs always produce the same result, and
// "now" is passed in so streak and same-day rules stay testable.
//
// An unknown kind (unreachable once the catalog validated at boot) evaluates
// to unsatisfied with zero progress rather than failing the whole listing.
func Evaluate(req Requirement, problems []*models.Problem, now time.Time) Evaluation {
	var metric int

	switch req.Kind {
	case KindTotalProblems:
		metric = len(problems)

	case KindDifficulty:
		for _, p := range problems {
			if p.Difficulty == req.Difficulty {
				metric++
			}
		}

	case KindTopic:
		for _, p := range problems {
			if strings.EqualFold(p.Topic, req.Topic) {
				metric++
			}
		}

	case KindStreak, KindConsistency:
		metric = CurrentStreak(createdTimes(problems), now)

	case KindTimeOfDay:
		for _, p := range problems {
			if hourInWindow(p.CreatedAt.In(time.Local).Hour(), req.StartHour, req.EndHour) {
				metric++
			}
		}

	case KindWeekend:
		for _, p := range problems {
			wd := p.CreatedAt.In(time.Local).Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				metric++
			}
		}

	case KindDailyCount:
		today := dayOf(now)
		for _, p := range problems {
			if dayOf(p.CreatedAt).Equal(today) {
				metric++
			}
		}

	default:
		return Evaluation{}
	}

	return Evaluation{
		Satisfied: metric >= req.Target,
		Progress:  progressPercent(metric, req.Target),
		Metric:    metric,
	}
}

// progressPercent computes min(100, round(100*metric/target)). The catalog
// guarantees target > 0.
func progressPercent(metric, target int) int {
	pct := int(math.Round(float64(metric) / float64(target) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// hourInWindow reports whether hour falls in [start, end), wrapping past
// midnight when start > end (e.g. [22, 5) covers 22:00-04:59).
func hourInWindow(hour, start, end int) bool {
	if start > end {
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}

func createdTimes(problems []*models.Problem) []time.Time {
	times := make([]time.Time, len(problems))
	for i, p := range problems {
		times[i] = p.CreatedAt
	}
	return times
}
