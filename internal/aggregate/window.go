package aggregate

import (
	"time"

	"github.com/benchantech/practicelog/internal/dates"
	"github.com/benchantech/practicelog/internal/store"
)

// SettingsWindow resolves the reporting day range against an explicit now:
// the configured start and end dates win when both parse and are ordered,
// otherwise a trailing window of chart_days ending on now's day.
func SettingsWindow(s *store.Store, now time.Time) []string {
	if startRaw, endRaw, ok := s.DateWindow(); ok {
		if start, ok := dates.ParseISO(startRaw); ok {
			if end, ok := dates.ParseISO(endRaw); ok && !end.Before(start) {
				return dates.Range(start, end)
			}
		}
	}

	days := s.ChartDays()
	return dates.Range(now.AddDate(0, 0, -(days-1)), now)
}
