package store

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/practicelog.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Log cache
// ============================================================

func TestPutAndGetMinutes(t *testing.T) {
	s := newTestStore(t)

	if err := s.PutMinutes("guitar", "2024-01-01", 30); err != nil {
		t.Fatal(err)
	}

	mins, ok, err := s.GetMinutes("guitar", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected cached entry")
	}
	if mins != 30 {
		t.Fatalf("minutes = %d, want 30", mins)
	}
}

func TestGetMinutesAbsent(t *testing.T) {
	s := newTestStore(t)

	mins, ok, err := s.GetMinutes("guitar", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no cached entry")
	}
	if mins != 0 {
		t.Fatalf("absent entry should read 0, got %d", mins)
	}
}

func TestPutMinutesOverwrites(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-01", 30)
	s.PutMinutes("guitar", "2024-01-01", 45)

	mins, _, _ := s.GetMinutes("guitar", "2024-01-01")
	if mins != 45 {
		t.Fatalf("re-ingestion must overwrite, not accumulate: got %d", mins)
	}
}

func TestPutMinutesZeroIsCached(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-01", 0)
	mins, ok, _ := s.GetMinutes("guitar", "2024-01-01")
	if !ok {
		t.Fatal("an explicit zero should still be a cache hit")
	}
	if mins != 0 {
		t.Fatalf("minutes = %d, want 0", mins)
	}
}

func TestPutMinutesClampsNegative(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-01", -5)
	mins, _, _ := s.GetMinutes("guitar", "2024-01-01")
	if mins != 0 {
		t.Fatalf("negative minutes should clamp to 0, got %d", mins)
	}
}

func TestGetMinutesCorruptValue(t *testing.T) {
	s := newTestStore(t)

	// Simulate cache corruption with a non-numeric persisted value.
	_, err := s.db.Exec(
		`INSERT INTO log_cache (slug, day, minutes) VALUES ('guitar', '2024-01-01', 'garbage')`,
	)
	if err != nil {
		t.Fatal(err)
	}

	mins, ok, err := s.GetMinutes("guitar", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("corrupt entry is still a cache hit")
	}
	if mins != 0 {
		t.Fatalf("corrupt value should read as 0, got %d", mins)
	}
}

func TestAllCachedDates(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-02", 10)
	s.PutMinutes("piano", "2024-01-01", 20)
	s.PutMinutes("piano", "2024-01-02", 30)

	days, err := s.AllCachedDates()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-01", "2024-01-02"}
	if len(days) != len(want) {
		t.Fatalf("got %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("got %v, want %v", days, want)
		}
	}
}

func TestAllCachedDatesEmpty(t *testing.T) {
	s := newTestStore(t)
	days, err := s.AllCachedDates()
	if err != nil {
		t.Fatal(err)
	}
	if days != nil {
		t.Fatalf("expected nil slice, got %v", days)
	}
}

func TestCachedEntries(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-01", 30)
	s.PutMinutes("guitar", "2024-01-02", 45)
	s.PutMinutes("piano", "2024-01-01", 99)

	entries, err := s.CachedEntries("guitar")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries["2024-01-01"] != 30 || entries["2024-01-02"] != 45 {
		t.Fatalf("unexpected entries: %v", entries)
	}
}

func TestDailyTotalsAcrossSkills(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-01", 30)
	s.PutMinutes("piano", "2024-01-01", 15)
	s.PutMinutes("guitar", "2024-01-02", 5)

	totals, err := s.DailyTotals()
	if err != nil {
		t.Fatal(err)
	}
	if totals["2024-01-01"] != 45 {
		t.Fatalf("2024-01-01 total = %d, want 45", totals["2024-01-01"])
	}
	if totals["2024-01-02"] != 5 {
		t.Fatalf("2024-01-02 total = %d, want 5", totals["2024-01-02"])
	}
}

func TestSkillTotal(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-01", 30)
	s.PutMinutes("guitar", "2024-01-02", 45)
	s.PutMinutes("piano", "2024-01-01", 99)

	total, err := s.SkillTotal("guitar")
	if err != nil {
		t.Fatal(err)
	}
	if total != 75 {
		t.Fatalf("total = %d, want 75", total)
	}
}

func TestClearCache(t *testing.T) {
	s := newTestStore(t)

	s.PutMinutes("guitar", "2024-01-01", 30)
	if err := s.ClearCache(); err != nil {
		t.Fatal(err)
	}

	_, ok, _ := s.GetMinutes("guitar", "2024-01-01")
	if ok {
		t.Fatal("cache should be empty after clear")
	}
	days, _ := s.AllCachedDates()
	if days != nil {
		t.Fatal("no dates should remain after clear")
	}
}

// ============================================================
// Skills
// ============================================================

func TestEnsureSkillAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.EnsureSkill("guitar", "#ff0000"); err != nil {
		t.Fatal(err)
	}

	sk, err := s.GetSkill("guitar")
	if err != nil {
		t.Fatal(err)
	}
	if sk.Slug != "guitar" || sk.Color != "#ff0000" {
		t.Fatalf("unexpected skill: %+v", sk)
	}
	if sk.XPPerMin != 1 {
		t.Fatalf("default XP multiplier = %d, want 1", sk.XPPerMin)
	}
	if sk.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestEnsureSkillKeepsExisting(t *testing.T) {
	s := newTestStore(t)

	s.EnsureSkill("guitar", "#ff0000")
	s.EnsureSkill("guitar", "#00ff00")

	sk, _ := s.GetSkill("guitar")
	if sk.Color != "#ff0000" {
		t.Fatalf("re-ensure must not overwrite: color = %q", sk.Color)
	}
}

func TestGetSkillNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSkill("missing")
	if err == nil {
		t.Fatal("expected error for missing skill")
	}
}

func TestListSkills(t *testing.T) {
	s := newTestStore(t)

	s.EnsureSkill("piano", "#222")
	s.EnsureSkill("guitar", "#111")

	skills, err := s.ListSkills()
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(skills))
	}
	// Should be sorted by slug
	if skills[0].Slug != "guitar" || skills[1].Slug != "piano" {
		t.Fatalf("expected sorted by slug: got %s, %s", skills[0].Slug, skills[1].Slug)
	}
}

func TestListSkillsEmpty(t *testing.T) {
	s := newTestStore(t)
	skills, err := s.ListSkills()
	if err != nil {
		t.Fatal(err)
	}
	if skills != nil {
		t.Fatalf("expected nil slice, got %d items", len(skills))
	}
}

func TestSetSkillOptions(t *testing.T) {
	s := newTestStore(t)

	s.EnsureSkill("guitar", "#111")
	if err := s.SetSkillOptions("guitar", "🎸", "#abc123", 2); err != nil {
		t.Fatal(err)
	}

	sk, _ := s.GetSkill("guitar")
	if sk.Emoji != "🎸" || sk.Color != "#abc123" || sk.XPPerMin != 2 {
		t.Fatalf("options not saved: %+v", sk)
	}
}

func TestSetSkillOptionsMissingSkill(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSkillOptions("missing", "", "#000", 1); err == nil {
		t.Fatal("expected error for missing skill")
	}
}

func TestSetSkillOptionsClampsNegativeXP(t *testing.T) {
	s := newTestStore(t)

	s.EnsureSkill("guitar", "#111")
	s.SetSkillOptions("guitar", "", "#111", -3)

	sk, _ := s.GetSkill("guitar")
	if sk.XPPerMin != 1 {
		t.Fatalf("negative multiplier should clamp to 1, got %d", sk.XPPerMin)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		"chart_days": "7",
		"group_by":   "Day",
	}

	for k, expected := range defaults {
		val, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("GetSetting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("GetSetting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("sheet_url", "https://example.com/a")
	s.SetSetting("sheet_url", "https://example.com/b")
	val, _ := s.GetSetting("sheet_url")
	if val != "https://example.com/b" {
		t.Fatalf("expected overwrite, got %s", val)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestListSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.ListSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 7 {
		t.Fatalf("expected at least 7 default settings, got %d", len(all))
	}
	// Should be sorted by key
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("settings not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

func TestSettingOr(t *testing.T) {
	s := newTestStore(t)

	if got := s.SettingOr("nonexistent", "fb"); got != "fb" {
		t.Fatalf("missing key should fall back, got %q", got)
	}
	if got := s.SettingOr("sheet_url", "fb"); got != "fb" {
		t.Fatalf("blank value should fall back, got %q", got)
	}
	s.SetSetting("sheet_url", "https://example.com")
	if got := s.SettingOr("sheet_url", "fb"); got != "https://example.com" {
		t.Fatalf("set value should win, got %q", got)
	}
}

func TestChartDays(t *testing.T) {
	s := newTestStore(t)

	if got := s.ChartDays(); got != 7 {
		t.Fatalf("seeded default = %d, want 7", got)
	}

	tests := []struct {
		raw  string
		want int
	}{
		{"14", 14},
		{"abc", 7},
		{"0", 7},
		{"-3", 7},
		{"", 7},
	}
	for _, tt := range tests {
		s.SetSetting("chart_days", tt.raw)
		if got := s.ChartDays(); got != tt.want {
			t.Errorf("ChartDays with %q = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestDateWindow(t *testing.T) {
	s := newTestStore(t)

	if _, _, ok := s.DateWindow(); ok {
		t.Fatal("unset bounds must not report ok")
	}

	s.SetSetting("start_date", "2024-01-01")
	if _, _, ok := s.DateWindow(); ok {
		t.Fatal("one bound set must not report ok")
	}

	s.SetSetting("end_date", "2024-01-31")
	start, end, ok := s.DateWindow()
	if !ok || start != "2024-01-01" || end != "2024-01-31" {
		t.Fatalf("got (%q, %q, %v)", start, end, ok)
	}
}
