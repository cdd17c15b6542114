package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/benchantech/practicelog/internal/aggregate"
)

// ToCSV writes a grouped series as a table: one row per skill, one column per
// label, with a leading "Skill" column. Skills appear in the given order.
func ToCSV(s *aggregate.Series, slugs []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := append([]string{"Skill"}, s.Labels...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, slug := range slugs {
		row := make([]string, 0, len(s.Labels)+1)
		row = append(row, slug)
		for _, label := range s.Labels {
			row = append(row, strconv.Itoa(s.Data[slug][label]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
