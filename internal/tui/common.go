package tui

import (
	"fmt"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewChart
	viewSkills
	viewSettings
)

var viewNames = []string{"Dashboard", "Chart", "Skills", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type refreshDoneMsg struct {
	skills  int
	minutes int
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
