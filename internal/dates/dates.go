// Package dates canonicalizes the date tokens that appear in practice log
// sources. Spreadsheet exports mix formats across columns, so normalization
// is format-tolerant but strict about never admitting future dates.
package dates

import (
	"strconv"
	"strings"
	"time"
)

// ISO is the canonical day format used throughout the cache and aggregator.
const ISO = "2006-01-02"

// genericLayouts are tried in order when a token is not slash-separated.
var genericLayouts = []string{
	ISO,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2 2006",
}

// Normalize converts a raw date token to canonical YYYY-MM-DD. Slash-separated
// tokens are read as month/day/year (US convention) from their integer parts,
// which sidesteps locale-dependent string parsing. Anything unparsable, and
// any date after today, reports ok=false.
func Normalize(token string, today time.Time) (string, bool) {
	token = strings.TrimSpace(strings.Trim(strings.TrimSpace(token), `'"`))
	if token == "" {
		return "", false
	}

	var d time.Time
	if parts := strings.Split(token, "/"); len(parts) == 3 {
		month, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		day, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return "", false
		}
		if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
			return "", false
		}
		d = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		for _, layout := range genericLayouts {
			if d, err = time.Parse(layout, token); err == nil {
				break
			}
		}
		if err != nil {
			return "", false
		}
	}

	d = Midnight(d)
	if d.After(Midnight(today)) {
		return "", false
	}
	return d.Format(ISO), true
}

// Midnight truncates t to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC day as an ISO label.
func Today() string {
	return Midnight(time.Now().UTC()).Format(ISO)
}

// Range enumerates every calendar day from start through end inclusive as
// ordered ISO labels. An end before start yields an empty range.
func Range(start, end time.Time) []string {
	start = Midnight(start)
	end = Midnight(end)

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(ISO))
	}
	return days
}

// ParseISO parses a canonical YYYY-MM-DD label.
func ParseISO(s string) (time.Time, bool) {
	t, err := time.Parse(ISO, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
