package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benchantech/practicelog/internal/aggregate"
	"github.com/benchantech/practicelog/internal/dates"
	"github.com/benchantech/practicelog/internal/store"
)

type chartModel struct {
	store  *store.Store
	width  int
	height int

	granularity aggregate.Granularity
	offset      int // windows back from the current one (0 = current)

	skills []store.Skill
	series *aggregate.Series

	chart barchart.Model
}

func newChartModel(s *store.Store) chartModel {
	return chartModel{
		store:       s,
		granularity: aggregate.ByDay,
		chart:       barchart.New(60, 12),
	}
}

func (c *chartModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type chartDataMsg struct {
	skills []store.Skill
	series *aggregate.Series
}

// refresh reads the shifted window from the cache only; network fetches stay
// on the app-level refresh action.
func (c chartModel) refresh() tea.Cmd {
	return func() tea.Msg {
		days := c.windowDays()
		skills, _ := c.store.ListSkills()

		series := &aggregate.Series{
			Labels: days,
			Data:   make(map[string]map[string]int, len(skills)),
		}
		for _, sk := range skills {
			entries, _ := c.store.CachedEntries(sk.Slug)
			byDay := make(map[string]int, len(days))
			for _, day := range days {
				byDay[day] = entries[day]
			}
			series.Data[sk.Slug] = byDay
		}

		return chartDataMsg{skills: skills, series: series}
	}
}

// windowDays shifts the configured reporting window back by whole windows.
func (c chartModel) windowDays() []string {
	base := aggregate.SettingsWindow(c.store, time.Now().UTC())
	if c.offset == 0 || len(base) == 0 {
		return base
	}
	start, ok := dates.ParseISO(base[0])
	if !ok {
		return base
	}
	end, ok := dates.ParseISO(base[len(base)-1])
	if !ok {
		return base
	}
	shift := -c.offset * len(base)
	return dates.Range(start.AddDate(0, 0, shift), end.AddDate(0, 0, shift))
}

func (c chartModel) update(msg tea.Msg) (chartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartDataMsg:
		c.skills = msg.skills
		c.series = msg.series
		c.buildChart()
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.offset++
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			if c.offset > 0 {
				c.offset--
			}
			return c, c.refresh()
		case key.Matches(msg, keys.Group):
			c.granularity = nextGranularity(c.granularity)
			c.buildChart()
			return c, nil
		}
	}
	return c, nil
}

func nextGranularity(g aggregate.Granularity) aggregate.Granularity {
	for i, cur := range aggregate.Granularities {
		if cur == g {
			return aggregate.Granularities[(i+1)%len(aggregate.Granularities)]
		}
	}
	return aggregate.ByDay
}

func (c *chartModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)
	if c.series == nil {
		return
	}

	grouped := aggregate.Group(c.series, c.granularity)

	var bars []barchart.BarData
	for _, label := range grouped.Labels {
		var values []barchart.BarValue
		for _, sk := range c.skills {
			mins := grouped.Data[sk.Slug][label]
			if mins == 0 {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(sk.Color))
			values = append(values, barchart.BarValue{
				Name:  sk.Slug,
				Value: float64(mins),
				Style: style,
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  shortLabel(label, c.granularity),
			Values: values,
		})
	}

	c.chart.PushAll(bars)
	c.chart.Draw()
}

// shortLabel trims day labels to fit under narrow bars.
func shortLabel(label string, g aggregate.Granularity) string {
	if g == aggregate.ByDay || g == aggregate.ByWeek {
		if d, ok := dates.ParseISO(label); ok {
			return d.Format("01/02")
		}
	}
	return label
}

func (c chartModel) view() string {
	w := c.width - 4

	rangeLabel := ""
	if c.series != nil && len(c.series.Labels) > 0 {
		rangeLabel = mutedStyle.Render(fmt.Sprintf("%s — %s",
			c.series.Labels[0], c.series.Labels[len(c.series.Labels)-1]))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Chart"), "  ",
		highlightStyle.Render(string(c.granularity)), "  ",
		rangeLabel,
	)

	chartView := c.chart.View()
	legend := c.renderLegend()
	nav := mutedStyle.Render("  ←/→: older/newer  g: group by")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", nav,
		),
	)
}

func (c chartModel) renderLegend() string {
	var items []string
	for _, sk := range c.skills {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sk.Color)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, sk.Slug))
	}
	if len(items) == 0 {
		return mutedStyle.Render("  No data cached yet")
	}
	return "  " + strings.Join(items, "  ")
}
