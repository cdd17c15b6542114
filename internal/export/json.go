package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/benchantech/practicelog/internal/aggregate"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	GroupedBy  string      `json:"grouped_by"`
	Labels     []string    `json:"labels"`
	Skills     []jsonSkill `json:"skills"`
}

type jsonSkill struct {
	Slug         string `json:"slug"`
	Minutes      []int  `json:"minutes"`
	TotalMinutes int    `json:"total_minutes"`
}

// ToJSON writes a grouped series with per-skill minute arrays aligned to the
// shared label list.
func ToJSON(s *aggregate.Series, slugs []string, groupedBy, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		GroupedBy:  groupedBy,
		Labels:     s.Labels,
	}

	for _, slug := range slugs {
		sk := jsonSkill{Slug: slug}
		for _, label := range s.Labels {
			v := s.Data[slug][label]
			sk.Minutes = append(sk.Minutes, v)
			sk.TotalMinutes += v
		}
		export.Skills = append(export.Skills, sk)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
