// Package tui implements the interactive dashboard built on Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benchantech/practicelog/internal/aggregate"
	"github.com/benchantech/practicelog/internal/export"
	"github.com/benchantech/practicelog/internal/source"
	"github.com/benchantech/practicelog/internal/store"
)

// Run starts the dashboard and blocks until the user quits.
func Run(s *store.Store) error {
	p := tea.NewProgram(NewApp(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	refreshing    bool

	dashboard dashboardModel
	chart     chartModel
	skills    skillsModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s),
		chart:      newChartModel(s),
		skills:     newSkillsModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.chart.setSize(a.width, contentHeight)
		a.skills.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Refresh):
			if a.refreshing {
				return a, nil
			}
			a.refreshing = true
			a.status = "Refreshing..."
			return a, a.doRefresh()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewChart
			return a, a.chart.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSkills
			return a, a.skills.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		a.refreshing = false
		return a, nil

	case refreshDoneMsg:
		a.refreshing = false
		a.status = fmt.Sprintf("Refreshed: %d skills, %s cached", msg.skills, formatMinutes(msg.minutes))
		return a, a.refreshCurrentView()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewChart:
		a.chart, cmd = a.chart.update(msg)
	case viewSkills:
		a.skills, cmd = a.skills.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewSkills:
		return a.skills.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewChart:
		return a.chart.refresh()
	case viewSkills:
		return a.skills.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

// doRefresh pulls the spreadsheet, then fills per-day gaps over the
// reporting window, all off the update loop.
func (a App) doRefresh() tea.Cmd {
	s := a.store
	return func() tea.Msg {
		ctx := context.Background()

		if sheetURL := s.SettingOr("sheet_url", ""); sheetURL != "" {
			client := &http.Client{Timeout: 30 * time.Second}
			sheet, err := source.FetchSheet(ctx, client, sheetURL, time.Now().UTC())
			if err == nil && sheet != nil {
				if err := source.Ingest(sheet, s); err != nil {
					return statusMsg{text: fmt.Sprintf("Ingest error: %v", err), isError: true}
				}
			}
		}

		skills, err := s.ListSkills()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Refresh error: %v", err), isError: true}
		}
		slugs := make([]string, 0, len(skills))
		for _, sk := range skills {
			slugs = append(slugs, sk.Slug)
		}
		if len(slugs) == 0 {
			return statusMsg{text: "No skills yet. Configure a source in Settings.", isError: true}
		}

		series, err := newRefresher(s).Series(ctx, slugs, aggregate.SettingsWindow(s, time.Now().UTC()))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Refresh error: %v", err), isError: true}
		}

		total := 0
		for _, slug := range slugs {
			total += series.Total(slug)
		}
		return refreshDoneMsg{skills: len(slugs), minutes: total}
	}
}

// newRefresher wires the per-day fetcher from the configured GitHub Pages
// source; with no source set, missing days cache as empty.
func newRefresher(s *store.Store) *aggregate.Refresher {
	username := s.SettingOr("username", "")
	repo := s.SettingOr("repo", "")
	if username == "" || repo == "" {
		zero := aggregate.FetcherFunc(func(context.Context, string, string) int { return 0 })
		return aggregate.NewRefresher(s, zero)
	}
	return aggregate.NewRefresher(s, source.NewDayLogClient(source.GitHubPagesURL(username, repo)))
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewChart:
		content = a.chart.view()
	case viewSkills:
		content = a.skills.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("practicelog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}
	if a.refreshing {
		status = warningStyle.Render(" ⟳ refreshing") + status
	}

	left := footerStyle.Render(helpView)
	right := status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		skills, err := s.ListSkills()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		slugs := make([]string, 0, len(skills))
		for _, sk := range skills {
			slugs = append(slugs, sk.Slug)
		}

		groupBy, _ := s.GetSetting("group_by")
		g := aggregate.ParseGranularity(groupBy)

		series, err := newRefresher(s).Series(context.Background(), slugs, aggregate.SettingsWindow(s, time.Now().UTC()))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		grouped := aggregate.Group(series, g)

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("practicelog-%s.csv", dateStr))
			if err := export.ToCSV(grouped, slugs, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("practicelog-%s.json", dateStr))
			if err := export.ToJSON(grouped, slugs, string(g), path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
