// Package source fetches raw practice data from the two upstream providers:
// a spreadsheet CSV export and static per-day JSON log files. Both are
// untrusted; malformed cells degrade to 0 and unreachable resources resolve
// to "no data" rather than errors, so a bad upstream can only undercount.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/benchantech/practicelog/internal/dates"
	"github.com/benchantech/practicelog/internal/store"
)

var sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// Sheet is a parsed tabular export: an ordered list of day labels plus
// per-slug day→minutes values.
type Sheet struct {
	Slugs []string // row order
	Dates []string // ascending ISO labels
	Data  map[string]map[string]int
}

// CSVExportURL rewrites a spreadsheet share link to its CSV export form.
// Links without a document ID report ok=false.
func CSVExportURL(shareURL string) (string, bool) {
	m := sheetIDPattern.FindStringSubmatch(shareURL)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", m[1]), true
}

// ParseSheet reads a CSV export. Row 0 is a header whose column 0 is
// reserved and whose remaining columns are date tokens; each later row is a
// slug followed by per-date minute values. Unparsable or future date columns
// are dropped, non-numeric cells read as 0, and a grid with no usable rows
// parses to nil without error.
func ParseSheet(r io.Reader, today time.Time) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sheet csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	// Map usable header columns to canonical day labels.
	type dateCol struct {
		idx int
		day string
	}
	var cols []dateCol
	for i, token := range rows[0][1:] {
		day, ok := dates.Normalize(token, today)
		if !ok {
			continue
		}
		cols = append(cols, dateCol{idx: i + 1, day: day})
	}
	if len(cols) == 0 {
		return nil, nil
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].day < cols[j].day })

	sheet := &Sheet{Data: make(map[string]map[string]int)}
	for _, c := range cols {
		sheet.Dates = append(sheet.Dates, c.day)
	}

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		slug := trimCell(row[0])
		if slug == "" {
			continue
		}
		sheet.Slugs = append(sheet.Slugs, slug)
		sheet.Data[slug] = make(map[string]int, len(cols))
		for _, c := range cols {
			raw := "0"
			if c.idx < len(row) {
				raw = trimCell(row[c.idx])
			}
			sheet.Data[slug][c.day] = parseCell(raw)
		}
	}

	if len(sheet.Slugs) == 0 {
		return nil, nil
	}
	return sheet, nil
}

// FetchSheet downloads and parses a spreadsheet share link. Any failure —
// bad link, network error, non-success status, unusable grid — returns
// (nil, nil): the caller treats it as "no data", never as fatal.
func FetchSheet(ctx context.Context, client *http.Client, shareURL string, today time.Time) (*Sheet, error) {
	csvURL, ok := CSVExportURL(shareURL)
	if !ok {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, csvURL, nil)
	if err != nil {
		return nil, nil
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	sheet, err := ParseSheet(resp.Body, today)
	if err != nil {
		return nil, nil
	}
	return sheet, nil
}

// Ingest writes a parsed sheet through to the cache store, registering any
// newly discovered skills with a random color. Re-ingesting the same sheet
// overwrites the same entries.
func Ingest(sheet *Sheet, st *store.Store) error {
	if sheet == nil {
		return nil
	}
	for _, slug := range sheet.Slugs {
		if err := st.EnsureSkill(slug, RandomColor()); err != nil {
			return err
		}
		for _, day := range sheet.Dates {
			if err := st.PutMinutes(slug, day, sheet.Data[slug][day]); err != nil {
				return err
			}
		}
	}
	return nil
}

// RandomColor picks a hex color for skills that have none configured yet.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

func trimCell(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `'"`))
}

func parseCell(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
