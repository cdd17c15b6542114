package store

import (
	"database/sql"
	"fmt"
	"time"
)

// EnsureSkill registers a slug if it is not already known, assigning the
// given color. Existing rows are left untouched.
func (s *Store) EnsureSkill(slug, color string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO skills (slug, color) VALUES (?, ?)`, slug, color,
	)
	if err != nil {
		return fmt.Errorf("ensure skill %q: %w", slug, err)
	}
	return nil
}

func (s *Store) GetSkill(slug string) (*Skill, error) {
	sk := &Skill{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT slug, emoji, color, xp_per_min, created_at FROM skills WHERE slug = ?`, slug,
	).Scan(&sk.Slug, &sk.Emoji, &sk.Color, &sk.XPPerMin, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get skill %q: %w", slug, err)
	}
	sk.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sk, nil
}

func (s *Store) ListSkills() ([]Skill, error) {
	rows, err := s.db.Query(
		`SELECT slug, emoji, color, xp_per_min, created_at FROM skills ORDER BY slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var sk Skill
		var createdAt string
		if err := rows.Scan(&sk.Slug, &sk.Emoji, &sk.Color, &sk.XPPerMin, &createdAt); err != nil {
			return nil, err
		}
		sk.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

// SetSkillOptions updates the display configuration for a skill. Negative
// XP multipliers are clamped to the default 1:1 ratio.
func (s *Store) SetSkillOptions(slug, emoji, color string, xpPerMin int) error {
	if xpPerMin < 0 {
		xpPerMin = 1
	}
	res, err := s.db.Exec(
		`UPDATE skills SET emoji = ?, color = ?, xp_per_min = ? WHERE slug = ?`,
		emoji, color, xpPerMin, slug,
	)
	if err != nil {
		return fmt.Errorf("set skill options %q: %w", slug, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set skill options %q: %w", slug, sql.ErrNoRows)
	}
	return nil
}
