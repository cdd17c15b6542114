package store

import (
	"fmt"
	"strconv"
)

// GetSetting returns the value for a settings key. All known keys are seeded
// by the migration, so a missing key surfaces as an error rather than a
// silent blank.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("setting %q: %w", key, err)
	}
	return value, nil
}

// SettingOr reads a key, substituting the fallback when the key is missing
// or set to the empty string.
func (s *Store) SettingOr(key, fallback string) string {
	value, err := s.GetSetting(key)
	if err != nil || value == "" {
		return fallback
	}
	return value
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// ChartDays returns the trailing reporting window length in days. Garbage
// and non-positive values read as the default 7.
func (s *Store) ChartDays() int {
	n, err := strconv.Atoi(s.SettingOr("chart_days", "7"))
	if err != nil || n <= 0 {
		return 7
	}
	return n
}

// DateWindow returns the explicit reporting bounds. ok is true only when
// both dates are set; validation of the values is left to the caller.
func (s *Store) DateWindow() (start, end string, ok bool) {
	start = s.SettingOr("start_date", "")
	end = s.SettingOr("end_date", "")
	return start, end, start != "" && end != ""
}

// ListSettings returns every setting ordered by key.
func (s *Store) ListSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, err
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}
