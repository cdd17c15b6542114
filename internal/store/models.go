package store

import "time"

// Skill is a tracked activity. Emoji, color and XP multiplier are display
// configuration; minute history lives in the log cache.
type Skill struct {
	Slug      string
	Emoji     string
	Color     string
	XPPerMin  int
	CreatedAt time.Time
}

// CacheEntry is the persisted minutes for one skill on one day.
type CacheEntry struct {
	Slug    string
	Day     string // YYYY-MM-DD
	Minutes int
}

type Setting struct {
	Key   string
	Value string
}
