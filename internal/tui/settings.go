package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/benchantech/practicelog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	sheetURL  *string
	username  *string
	repo      *string
	startDate *string
	endDate   *string
	chartDays *string
	groupBy   *string
}

func newSettingsModel(s *store.Store) settingsModel {
	su, un, rp := "", "", ""
	sd, ed, cd, gb := "", "", "", ""
	return settingsModel{
		store:     s,
		sheetURL:  &su,
		username:  &un,
		repo:      &rp,
		startDate: &sd,
		endDate:   &ed,
		chartDays: &cd,
		groupBy:   &gb,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.ListSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.sheetURL = s.store.SettingOr("sheet_url", "")
	*s.username = s.store.SettingOr("username", "")
	*s.repo = s.store.SettingOr("repo", "")
	*s.startDate = s.store.SettingOr("start_date", "")
	*s.endDate = s.store.SettingOr("end_date", "")
	*s.chartDays = s.store.SettingOr("chart_days", "7")
	*s.groupBy = s.store.SettingOr("group_by", "Day")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Spreadsheet share link").Value(s.sheetURL),
			huh.NewInput().Title("GitHub username").Value(s.username),
			huh.NewInput().Title("Log repository").Value(s.repo),
		).Title("Sources"),
		huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD, blank for trailing window)").Value(s.startDate),
			huh.NewInput().Title("End date (YYYY-MM-DD)").Value(s.endDate),
			huh.NewInput().Title("Trailing window (days)").Value(s.chartDays),
			huh.NewSelect[string]().Title("Group by").
				Options(
					huh.NewOption("Day", "Day"),
					huh.NewOption("Week", "Week"),
					huh.NewOption("Month", "Month"),
					huh.NewOption("Quarter", "Quarter"),
					huh.NewOption("Year", "Year"),
				).Value(s.groupBy),
		).Title("Reporting"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	s.store.SetSetting("sheet_url", *s.sheetURL)
	s.store.SetSetting("username", *s.username)
	s.store.SetSetting("repo", *s.repo)
	s.store.SetSetting("start_date", *s.startDate)
	s.store.SetSetting("end_date", *s.endDate)
	s.store.SetSetting("chart_days", *s.chartDays)
	s.store.SetSetting("group_by", *s.groupBy)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := setting.Value
		if value == "" {
			value = mutedStyle.Render("(unset)")
		} else {
			value = highlightStyle.Render(value)
		}
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
