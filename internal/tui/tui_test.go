package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benchantech/practicelog/internal/aggregate"
	"github.com/benchantech/practicelog/internal/dates"
	"github.com/benchantech/practicelog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedSkill(t *testing.T, s *store.Store, slug string, days map[string]int) {
	t.Helper()
	if err := s.EnsureSkill(slug, "#00ff00"); err != nil {
		t.Fatal(err)
	}
	for day, mins := range days {
		if err := s.PutMinutes(slug, day, mins); err != nil {
			t.Fatal(err)
		}
	}
}

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	today := dates.Today()
	seedSkill(t, s, "guitar", map[string]int{today: 30})

	d := newDashboardModel(s)
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("loadData returned %T", msg)
	}
	if data.todayTotal != 30 {
		t.Fatalf("today total = %d, want 30", data.todayTotal)
	}
	if data.streaks.Current != 1 {
		t.Fatalf("streak = %d, want 1", data.streaks.Current)
	}
	if len(data.today) != 1 || data.today[0].skill.Slug != "guitar" {
		t.Fatalf("today rows = %+v", data.today)
	}
	if data.today[0].level.Level < 1 {
		t.Fatal("level missing from dashboard row")
	}
}

func TestDashboardViewEmpty(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)
	d.setSize(100, 30)

	d, _ = d.update(dashboardDataMsg{})
	view := d.view()
	if !strings.Contains(view, "No skills yet") {
		t.Fatal("empty dashboard should explain how to start")
	}
}

func TestDashboardViewShowsStreak(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)
	d.setSize(100, 30)

	msg := dashboardDataMsg{todayTotal: 45}
	msg.streaks.Current = 3
	msg.streaks.Max = 9
	d, _ = d.update(msg)

	view := d.view()
	if !strings.Contains(view, "3 day streak") {
		t.Fatal("current streak missing from view")
	}
	if !strings.Contains(view, "best: 9 days") {
		t.Fatal("max streak missing from view")
	}
}

// ============================================================
// Chart model
// ============================================================

func TestChartRefreshReadsCache(t *testing.T) {
	s := newTestStore(t)
	today := dates.Today()
	seedSkill(t, s, "guitar", map[string]int{today: 25})

	c := newChartModel(s)
	msg := c.refresh()()
	data, ok := msg.(chartDataMsg)
	if !ok {
		t.Fatalf("refresh returned %T", msg)
	}
	if data.series.Data["guitar"][today] != 25 {
		t.Fatalf("series missing cached minutes: %v", data.series.Data["guitar"])
	}
	if len(data.series.Labels) != 7 {
		t.Fatalf("default window should be 7 days, got %d", len(data.series.Labels))
	}
}

func TestChartGranularityCycles(t *testing.T) {
	s := newTestStore(t)
	c := newChartModel(s)
	c.setSize(100, 30)

	if c.granularity != aggregate.ByDay {
		t.Fatal("charts start at day granularity")
	}
	c, _ = c.update(keyMsg("g"))
	if c.granularity != aggregate.ByWeek {
		t.Fatalf("after one cycle: %s", c.granularity)
	}
	for i := 0; i < 4; i++ {
		c, _ = c.update(keyMsg("g"))
	}
	if c.granularity != aggregate.ByDay {
		t.Fatalf("cycle should wrap to Day, got %s", c.granularity)
	}
}

func TestChartOffsetPaging(t *testing.T) {
	s := newTestStore(t)
	c := newChartModel(s)
	c.setSize(100, 30)

	base := c.windowDays()

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyLeft})
	if c.offset != 1 {
		t.Fatalf("offset = %d, want 1", c.offset)
	}
	shifted := c.windowDays()
	if len(shifted) != len(base) {
		t.Fatalf("shifted window resized: %d vs %d", len(shifted), len(base))
	}
	if shifted[len(shifted)-1] >= base[0] {
		t.Fatalf("shifted window must end before the base window starts: %s vs %s",
			shifted[len(shifted)-1], base[0])
	}

	// Paging forward stops at the current window.
	c, _ = c.update(tea.KeyMsg{Type: tea.KeyRight})
	c, _ = c.update(tea.KeyMsg{Type: tea.KeyRight})
	if c.offset != 0 {
		t.Fatalf("offset = %d, want 0", c.offset)
	}
}

func TestChartViewRenders(t *testing.T) {
	s := newTestStore(t)
	today := dates.Today()
	seedSkill(t, s, "guitar", map[string]int{today: 25})

	c := newChartModel(s)
	c.setSize(100, 30)
	msg := c.refresh()()
	c, _ = c.update(msg)

	view := c.view()
	if !strings.Contains(view, "Chart") {
		t.Fatal("chart title missing")
	}
	if !strings.Contains(view, "guitar") {
		t.Fatal("legend missing")
	}
}

// ============================================================
// Skills model
// ============================================================

func TestSkillsRefresh(t *testing.T) {
	s := newTestStore(t)
	seedSkill(t, s, "guitar", map[string]int{"2024-01-01": 120})

	m := newSkillsModel(s)
	msg := m.refresh()()
	data, ok := msg.(skillsDataMsg)
	if !ok {
		t.Fatalf("refresh returned %T", msg)
	}
	if len(data.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(data.rows))
	}
	if data.rows[0].total != 120 {
		t.Fatalf("total = %d, want 120", data.rows[0].total)
	}
	if data.rows[0].level.Level < 1 {
		t.Fatal("level not computed")
	}
}

func TestSkillsCursorMovement(t *testing.T) {
	s := newTestStore(t)
	seedSkill(t, s, "guitar", nil)
	seedSkill(t, s, "piano", nil)

	m := newSkillsModel(s)
	msg := m.refresh()()
	m, _ = m.update(msg)

	if m.cursor != 0 {
		t.Fatal("cursor starts at 0")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatal("cursor must stop at the last row")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestSkillsFormOpensAndSaves(t *testing.T) {
	s := newTestStore(t)
	seedSkill(t, s, "guitar", nil)

	m := newSkillsModel(s)
	msg := m.refresh()()
	m, _ = m.update(msg)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.formActive {
		t.Fatal("enter should open the edit form")
	}

	*m.formEmoji = "🎸"
	*m.formColor = "#ff0000"
	*m.formXP = "2"
	m.saveSkill()

	sk, err := s.GetSkill("guitar")
	if err != nil {
		t.Fatal(err)
	}
	if sk.Emoji != "🎸" || sk.Color != "#ff0000" || sk.XPPerMin != 2 {
		t.Fatalf("skill not saved: %+v", sk)
	}
}

func TestSkillsFormEscCancels(t *testing.T) {
	s := newTestStore(t)
	seedSkill(t, s, "guitar", nil)

	m := newSkillsModel(s)
	msg := m.refresh()()
	m, _ = m.update(msg)
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestSkillsViewEmpty(t *testing.T) {
	s := newTestStore(t)
	m := newSkillsModel(s)
	m.setSize(100, 30)

	view := m.view()
	if !strings.Contains(view, "No skills yet") {
		t.Fatal("empty skills view should explain how to start")
	}
}

func TestSkillsViewSharesWeightedByXP(t *testing.T) {
	s := newTestStore(t)
	seedSkill(t, s, "guitar", map[string]int{"2024-01-01": 30})
	seedSkill(t, s, "piano", map[string]int{"2024-01-01": 30})
	if err := s.SetSkillOptions("guitar", "", "#00ff00", 2); err != nil {
		t.Fatal(err)
	}

	m := newSkillsModel(s)
	m.setSize(100, 30)
	msg := m.refresh()()
	m, _ = m.update(msg)

	// Equal minutes, but guitar earns double XP: 60 of 90 vs 30 of 90.
	view := m.view()
	if !strings.Contains(view, "67%") {
		t.Fatalf("weighted skill share missing from view:\n%s", view)
	}
	if !strings.Contains(view, "33%") {
		t.Fatalf("unweighted skill share missing from view:\n%s", view)
	}
}

func TestShareBar(t *testing.T) {
	if shareBar(0, 0, 10) != "" {
		t.Fatal("zero whole renders nothing")
	}
	bar := shareBar(5, 10, 10)
	if !strings.Contains(bar, "50%") {
		t.Fatalf("bar = %q", bar)
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	msg := m.refresh()()
	data, ok := msg.(settingsDataMsg)
	if !ok {
		t.Fatalf("refresh returned %T", msg)
	}
	if len(data.settings) == 0 {
		t.Fatal("defaults should be listed")
	}
}

func TestSettingsFormSaves(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	msg := m.refresh()()
	m, _ = m.update(msg)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.formActive {
		t.Fatal("enter should open the settings form")
	}

	*m.sheetURL = "https://docs.google.com/spreadsheets/d/abc/edit"
	*m.username = "ben"
	*m.repo = "practice-logs"
	*m.chartDays = "14"
	*m.groupBy = "Week"
	m.saveSettings()

	if v, _ := s.GetSetting("username"); v != "ben" {
		t.Fatalf("username = %q", v)
	}
	if v, _ := s.GetSetting("chart_days"); v != "14" {
		t.Fatalf("chart_days = %q", v)
	}
	if v, _ := s.GetSetting("group_by"); v != "Week" {
		t.Fatalf("group_by = %q", v)
	}
}

// ============================================================
// App model
// ============================================================

func TestAppTabSwitching(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 100
	app.height = 30

	model, _ := app.Update(keyMsg("2"))
	app = model.(App)
	if app.activeView != viewChart {
		t.Fatalf("view = %d, want chart", app.activeView)
	}

	model, _ = app.Update(keyMsg("4"))
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatalf("view = %d, want settings", app.activeView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewDashboard {
		t.Fatal("tab should wrap around to the dashboard")
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 100
	app.height = 30

	model, _ := app.Update(keyMsg("e"))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.exportCursor)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppStatusFromRefresh(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 100
	app.height = 30
	app.refreshing = true

	model, _ := app.Update(refreshDoneMsg{skills: 2, minutes: 90})
	app = model.(App)
	if app.refreshing {
		t.Fatal("refresh done should clear the flag")
	}
	if !strings.Contains(app.status, "2 skills") {
		t.Fatalf("status = %q", app.status)
	}
}

func TestAppViewRenders(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = model.(App)

	view := app.View()
	if !strings.Contains(view, "practicelog") {
		t.Fatal("header missing")
	}
	for _, name := range viewNames {
		if !strings.Contains(view, name) {
			t.Fatalf("tab %q missing from header", name)
		}
	}
}
