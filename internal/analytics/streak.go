package analytics

import (
	"sort"
	"time"
)

// StreakResult holds the derived streak counters for a set of
// all-goals-achieved dates.
type StreakResult struct {
	Current         int
	Longest         int
	LastAchievement string // YYYY-MM-DD, empty when no achievements exist
}

const dateLayout = "2006-01-02"

// Streaks derives current and longest consecutive-achievement-day counts
// from a set of achievement dates (YYYY-MM-DD). Duplicates are ignored.
// The current streak survives a one-day grace period: it counts as long as
// the last achievement is today or yesterday relative to today.
func Streaks(dates []string, today time.Time) StreakResult {
	days := dedupeDays(dates)
	if len(days) == 0 {
		return StreakResult{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	runLength := 1
	longest := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			runLength++
		} else {
			runLength = 1
		}
		if runLength > longest {
			longest = runLength
		}
	}

	last := days[len(days)-1]
	current := 0
	if withinGrace(last, today) {
		current = runLength
	}

	return StreakResult{
		Current:         current,
		Longest:         longest,
		LastAchievement: last.Format(dateLayout),
	}
}

// dedupeDays parses and deduplicates calendar dates; unparseable entries
// are filtered out rather than failing the computation.
func dedupeDays(dates []string) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, raw := range dates {
		d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			continue
		}
		key := d.Format(dateLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, d)
	}
	return days
}

func withinGrace(last, today time.Time) bool {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	diff := t.Sub(last)
	return diff >= 0 && diff <= 24*time.Hour
}

// Milestones are streak lengths worth celebrating.
var Milestones = []int{3, 7, 14, 30, 60, 100, 365}

// CrossedMilestone reports the highest milestone passed when the current
// streak moves from prev to next. Only forward movement qualifies.
func CrossedMilestone(prev, next int) (int, bool) {
	if next <= prev {
		return 0, false
	}
	crossed := 0
	for _, m := range Milestones {
		if prev < m && next >= m {
			crossed = m
		}
	}
	return crossed, crossed != 0
}
