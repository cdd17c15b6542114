package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// GetMinutes returns the cached minutes for a (slug, day) pair and whether
// the pair has been cached at all. A corrupted (non-numeric) persisted value
// reads as 0 rather than an error.
func (s *Store) GetMinutes(slug, day string) (int, bool, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT minutes FROM log_cache WHERE slug = ? AND day = ?`, slug, day,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get minutes %s/%s: %w", slug, day, err)
	}
	return parseMinutes(raw), true, nil
}

// PutMinutes records the authoritative minutes for a (slug, day) pair.
// Re-ingestion overwrites; values are never accumulated across writes.
func (s *Store) PutMinutes(slug, day string, minutes int) error {
	if minutes < 0 {
		minutes = 0
	}
	_, err := s.db.Exec(
		`INSERT INTO log_cache (slug, day, minutes) VALUES (?, ?, ?)
		 ON CONFLICT(slug, day) DO UPDATE SET minutes = excluded.minutes`,
		slug, day, strconv.Itoa(minutes),
	)
	if err != nil {
		return fmt.Errorf("put minutes %s/%s: %w", slug, day, err)
	}
	return nil
}

// DeleteMinutes drops the cached entry for a (slug, day) pair, if any.
func (s *Store) DeleteMinutes(slug, day string) error {
	_, err := s.db.Exec(`DELETE FROM log_cache WHERE slug = ? AND day = ?`, slug, day)
	if err != nil {
		return fmt.Errorf("delete minutes %s/%s: %w", slug, day, err)
	}
	return nil
}

// AllCachedDates returns every distinct day observed across any skill,
// in ascending order.
func (s *Store) AllCachedDates() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT day FROM log_cache ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("list cached dates: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// CachedEntries returns all cached day→minutes values for one skill.
func (s *Store) CachedEntries(slug string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT day, minutes FROM log_cache WHERE slug = ?`, slug)
	if err != nil {
		return nil, fmt.Errorf("cached entries for %s: %w", slug, err)
	}
	defer rows.Close()

	entries := make(map[string]int)
	for rows.Next() {
		var day, raw string
		if err := rows.Scan(&day, &raw); err != nil {
			return nil, err
		}
		entries[day] = parseMinutes(raw)
	}
	return entries, rows.Err()
}

// DailyTotals sums cached minutes per day across all skills.
func (s *Store) DailyTotals() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT day, minutes FROM log_cache`)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var day, raw string
		if err := rows.Scan(&day, &raw); err != nil {
			return nil, err
		}
		totals[day] += parseMinutes(raw)
	}
	return totals, rows.Err()
}

// SkillTotal sums all cached minutes for one skill.
func (s *Store) SkillTotal(slug string) (int, error) {
	entries, err := s.CachedEntries(slug)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range entries {
		total += m
	}
	return total, nil
}

// ClearCache removes every cached entry. The cache has no TTL; this bulk
// clear is the only way to drop history.
func (s *Store) ClearCache() error {
	_, err := s.db.Exec(`DELETE FROM log_cache`)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// parseMinutes reads a persisted minute value, degrading malformed or
// negative values to 0.
func parseMinutes(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
