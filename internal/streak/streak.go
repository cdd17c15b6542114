// Package streak computes day-over-day practice streaks from cached daily
// totals combined across all skills.
package streak

import (
	"sort"

	"github.com/benchantech/practicelog/internal/dates"
)

// State holds the streak counters derived from the full cached history.
// It is recomputed on demand and never persisted.
type State struct {
	Current int
	Max     int
}

// Compute walks every cached date in ascending order, counting consecutive
// calendar days whose combined minutes exceed zero. A date cached with an
// explicit zero breaks the streak exactly like a missing date. The current
// streak is the running count exactly at today; if today is absent or has
// zero minutes, the current streak is zero.
func Compute(totalsByDate map[string]int, today string) State {
	days := make([]string, 0, len(totalsByDate))
	for d := range totalsByDate {
		days = append(days, d)
	}
	sort.Strings(days)

	var st State
	run := 0
	prev := "" // last date with positive minutes
	for _, d := range days {
		if totalsByDate[d] > 0 {
			if prev != "" && isNextDay(prev, d) {
				run++
			} else {
				run = 1
			}
			prev = d
			if run > st.Max {
				st.Max = run
			}
		} else {
			run = 0
			prev = ""
		}
		if d == today {
			st.Current = run
		}
	}
	return st
}

func isNextDay(prev, curr string) bool {
	p, ok := dates.ParseISO(prev)
	if !ok {
		return false
	}
	return p.AddDate(0, 0, 1).Format(dates.ISO) == curr
}
