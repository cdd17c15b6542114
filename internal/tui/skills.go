package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/benchantech/practicelog/internal/level"
	"github.com/benchantech/practicelog/internal/store"
)

type skillsModel struct {
	store  *store.Store
	width  int
	height int

	rows   []skillRow
	cursor int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formEmoji *string
	formColor *string
	formXP    *string
}

type skillRow struct {
	skill store.Skill
	total int
	level level.Progression
}

func newSkillsModel(s *store.Store) skillsModel {
	emoji, color, xp := "", "", ""
	return skillsModel{
		store:     s,
		formEmoji: &emoji,
		formColor: &color,
		formXP:    &xp,
	}
}

func (s *skillsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type skillsDataMsg struct {
	rows []skillRow
}

func (s skillsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		skills, _ := s.store.ListSkills()
		var rows []skillRow
		for _, sk := range skills {
			total, _ := s.store.SkillTotal(sk.Slug)
			rows = append(rows, skillRow{
				skill: sk,
				total: total,
				level: level.Progress(total),
			})
		}
		return skillsDataMsg{rows: rows}
	}
}

func (s skillsModel) update(msg tea.Msg) (skillsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case skillsDataMsg:
		s.rows = msg.rows
		if s.cursor >= len(s.rows) {
			s.cursor = len(s.rows) - 1
		}
		if s.cursor < 0 {
			s.cursor = 0
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(s.rows)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			if len(s.rows) > 0 {
				return s.showForm()
			}
		}
	}
	return s, nil
}

func (s skillsModel) showForm() (skillsModel, tea.Cmd) {
	sk := s.rows[s.cursor].skill
	*s.formEmoji = sk.Emoji
	*s.formColor = sk.Color
	*s.formXP = strconv.Itoa(sk.XPPerMin)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Emoji").Value(s.formEmoji),
			huh.NewInput().Title("Color (#rrggbb)").Value(s.formColor),
			huh.NewInput().Title("XP per minute").Value(s.formXP),
		).Title(sk.Slug),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s skillsModel) updateForm(msg tea.Msg) (skillsModel, tea.Cmd) {
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
		s.saveSkill()
		return s, s.refresh()
	}

	return s, cmd
}

func (s skillsModel) saveSkill() {
	sk := s.rows[s.cursor].skill
	xp := sk.XPPerMin
	if n, err := strconv.Atoi(strings.TrimSpace(*s.formXP)); err == nil {
		xp = n
	}
	s.store.SetSkillOptions(sk.Slug, *s.formEmoji, *s.formColor, xp)
}

func (s skillsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Edit Skill")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Skills")
	if len(s.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No skills yet. Press r to refresh from a configured source."),
		)
		return panelStyle.Width(w).Render(content)
	}

	grandXP := 0
	for _, row := range s.rows {
		grandXP += level.XP(row.total, row.skill.XPPerMin)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, row := range s.rows {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(row.skill.Color)).Render("●")
		name := row.skill.Slug
		if row.skill.Emoji != "" {
			name = row.skill.Emoji + " " + name
		}

		progress := ""
		if row.level.Level < level.MaxLevel {
			progress = mutedStyle.Render(fmt.Sprintf("%s to next", formatMinutes(row.level.RemainingMinutes)))
		} else {
			progress = successStyle.Render("max")
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-18s lvl %3d  %-28s %8s  %s",
			cursor, colorDot, name, row.level.Level, row.level.Title,
			formatMinutes(row.total), progress,
		)))
		rows = append(rows, "    "+shareBar(level.XP(row.total, row.skill.XPPerMin), grandXP, min(w-10, 40)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  ↑/↓: select"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// shareBar renders a skill's share of all earned XP, so weighted skills
// claim proportionally more of the bar than their raw minutes would.
func shareBar(part, whole, width int) string {
	if whole <= 0 || width <= 0 {
		return ""
	}
	filled := part * width / whole
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := float64(part) * 100 / float64(whole)
	return highlightStyle.Render(bar) + mutedStyle.Render(fmt.Sprintf(" %.0f%%", pct))
}
