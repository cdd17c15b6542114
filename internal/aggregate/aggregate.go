// Package aggregate turns cached per-day minutes into ordered, optionally
// re-bucketed series ready for rendering.
package aggregate

import (
	"fmt"

	"github.com/benchantech/practicelog/internal/dates"
)

// Granularity selects how day labels are re-bucketed.
type Granularity string

const (
	ByDay     Granularity = "Day"
	ByWeek    Granularity = "Week"
	ByMonth   Granularity = "Month"
	ByQuarter Granularity = "Quarter"
	ByYear    Granularity = "Year"
)

// Granularities lists the supported bucketings in display order.
var Granularities = []Granularity{ByDay, ByWeek, ByMonth, ByQuarter, ByYear}

// ParseGranularity matches a user-supplied name, defaulting to ByDay.
func ParseGranularity(s string) Granularity {
	for _, g := range Granularities {
		if string(g) == s {
			return g
		}
	}
	return ByDay
}

// Series is an ordered list of labels plus per-slug label→minutes values.
type Series struct {
	Labels []string
	Data   map[string]map[string]int
}

// Group re-buckets a day-granularity series. Labels appear in the order
// their first constituent day is encountered, and values sharing a group
// key are summed per slug. ByDay returns the series unchanged.
func Group(s *Series, g Granularity) *Series {
	if s == nil || g == ByDay {
		return s
	}

	grouped := &Series{Data: make(map[string]map[string]int, len(s.Data))}
	seen := make(map[string]bool)

	for _, day := range s.Labels {
		key := groupKey(day, g)
		if !seen[key] {
			seen[key] = true
			grouped.Labels = append(grouped.Labels, key)
		}
		for slug, byDay := range s.Data {
			if grouped.Data[slug] == nil {
				grouped.Data[slug] = make(map[string]int)
			}
			grouped.Data[slug][key] += byDay[day]
		}
	}
	return grouped
}

// groupKey maps an ISO day label to its bucket label. Weeks start on the
// Sunday on or before the day.
func groupKey(day string, g Granularity) string {
	d, ok := dates.ParseISO(day)
	if !ok {
		return day
	}
	switch g {
	case ByWeek:
		return d.AddDate(0, 0, -int(d.Weekday())).Format(dates.ISO)
	case ByMonth:
		return d.Format("2006-01")
	case ByQuarter:
		return fmt.Sprintf("%d-Q%d", d.Year(), (int(d.Month())-1)/3+1)
	case ByYear:
		return d.Format("2006")
	default:
		return day
	}
}

// Total sums every value in the series for one slug.
func (s *Series) Total(slug string) int {
	if s == nil {
		return 0
	}
	total := 0
	for _, v := range s.Data[slug] {
		total += v
	}
	return total
}
