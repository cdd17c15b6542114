package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benchantech/practicelog/internal/dates"
	"github.com/benchantech/practicelog/internal/level"
	"github.com/benchantech/practicelog/internal/store"
	"github.com/benchantech/practicelog/internal/streak"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	streaks    streak.State
	todayTotal int
	today      []skillToday
	grandTotal int
	totalXP    int
}

type skillToday struct {
	skill   store.Skill
	minutes int
	level   level.Progression
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	streaks    streak.State
	todayTotal int
	today      []skillToday
	grandTotal int
	totalXP    int
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := dates.Today()

		totals, _ := d.store.DailyTotals()
		st := streak.Compute(totals, today)

		skills, _ := d.store.ListSkills()
		var rows []skillToday
		grand, xp := 0, 0
		for _, sk := range skills {
			mins, _, _ := d.store.GetMinutes(sk.Slug, today)
			total, _ := d.store.SkillTotal(sk.Slug)
			grand += total
			xp += level.XP(total, sk.XPPerMin)
			rows = append(rows, skillToday{
				skill:   sk,
				minutes: mins,
				level:   level.Progress(total),
			})
		}

		return dashboardDataMsg{
			streaks:    st,
			todayTotal: totals[today],
			today:      rows,
			grandTotal: grand,
			totalXP:    xp,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.streaks = msg.streaks
		d.todayTotal = msg.todayTotal
		d.today = msg.today
		d.grandTotal = msg.grandTotal
		d.totalXP = msg.totalXP
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	streakPanel := d.renderStreakPanel(contentWidth)
	todayPanel := d.renderTodayPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, streakPanel, todayPanel)
}

func (d dashboardModel) renderStreakPanel(w int) string {
	flame := "🔥"
	if d.streaks.Current == 0 {
		flame = "💤"
	}

	current := fmt.Sprintf("%s  %d day streak", flame, d.streaks.Current)
	best := mutedStyle.Render(fmt.Sprintf("best: %d days", d.streaks.Max))
	total := mutedStyle.Render(fmt.Sprintf("lifetime: %s, %d XP", formatMinutes(d.grandTotal), d.totalXP))

	line := successStyle.Render(current)
	if d.streaks.Current == 0 {
		line = mutedStyle.Render(current)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		line,
		fmt.Sprintf("%s   %s", best, total),
	)
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatMinutes(d.todayTotal))
	header := fmt.Sprintf("%s  %s", title, total)

	if len(d.today) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No skills yet. Press r to refresh or 4 to configure a source."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	for _, row := range d.today {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(row.skill.Color)).Render("●")
		name := row.skill.Slug
		if row.skill.Emoji != "" {
			name = row.skill.Emoji + " " + name
		}
		mins := mutedStyle.Render("—")
		if row.minutes > 0 {
			mins = formatMinutes(row.minutes)
		}
		rows = append(rows, fmt.Sprintf("  %s %-20s %8s   lvl %d %s",
			colorDot, name, mins, row.level.Level, mutedStyle.Render(row.level.Title),
		))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
