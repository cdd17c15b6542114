// Package level converts all-time practice minutes into an XP level, a
// thematic stage title, and the minutes remaining to the next level.
// Leveling is always denominated in raw minutes; a skill's XP multiplier
// scales the reported XP number, never the level.
package level

// Progression is the derived level state for one skill. It is recomputed
// from minute totals on every query and never stored.
type Progression struct {
	Level            int
	Title            string
	RemainingMinutes int
}

// Progress returns the progression for a given all-time minute total.
// The level is the highest whose cumulative threshold is met; totals below
// the first threshold (which is 0) still land on level 1.
func Progress(totalMinutes int) Progression {
	lvl := 1
	for i, floor := range thresholds {
		if totalMinutes >= floor {
			lvl = i + 1
		}
	}

	remaining := 0
	if lvl < MaxLevel {
		remaining = thresholds[lvl] - totalMinutes
		if remaining < 0 {
			remaining = 0
		}
	}

	return Progression{
		Level:            lvl,
		Title:            TitleFor(lvl),
		RemainingMinutes: remaining,
	}
}

// TitleFor returns the stage name for a level. Names advance every three
// levels and cycle once the first pass is exhausted; level 100 always maps
// to its unique title.
func TitleFor(lvl int) string {
	if lvl >= MaxLevel {
		return maxLevelName
	}
	if lvl < 1 {
		lvl = 1
	}
	return stageNames[(lvl-1)/3%len(stageNames)]
}

// XP converts a minute total to display XP using a per-skill multiplier.
// Multipliers below zero are treated as the default 1:1 ratio.
func XP(totalMinutes, xpPerMin int) int {
	if xpPerMin < 0 {
		xpPerMin = 1
	}
	return totalMinutes * xpPerMin
}

// Threshold reports the cumulative minute floor for a level in [1, 100].
func Threshold(lvl int) int {
	if lvl < 1 {
		lvl = 1
	}
	if lvl > MaxLevel {
		lvl = MaxLevel
	}
	return thresholds[lvl-1]
}
