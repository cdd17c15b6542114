package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DayLogClient fetches per-day minute records from static JSON files laid
// out as <base>/<slug>/<year>/<month>/<day>.json.
type DayLogClient struct {
	base   string
	client *http.Client
}

// GitHubPagesURL builds the conventional base URL for logs published from a
// GitHub repository.
func GitHubPagesURL(username, repo string) string {
	return fmt.Sprintf("https://%s.github.io/%s", username, repo)
}

func NewDayLogClient(base string) *DayLogClient {
	return &DayLogClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// dayEntry is one logged practice session. Minutes is decoded loosely:
// upstream files carry it as a number or a numeric string, and omit it
// entirely in older logs.
type dayEntry struct {
	Minutes any `json:"minutes"`
}

// FetchDay returns the total minutes for one skill on one ISO day, summing
// every entry in the day's log file. A missing file, a non-success status,
// a malformed body, or a network error all resolve to 0 — the cache then
// records the day as empty rather than the refresh failing.
func (c *DayLogClient) FetchDay(ctx context.Context, slug, day string) int {
	parts := strings.SplitN(day, "-", 3)
	if len(parts) != 3 {
		return 0
	}
	url := fmt.Sprintf("%s/%s/%s/%s/%s.json", c.base, slug, parts[0], parts[1], parts[2])

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0
	}

	var entries []dayEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return 0
	}

	total := 0
	for _, e := range entries {
		total += coerceMinutes(e.Minutes)
	}
	return total
}

// coerceMinutes reads a loosely-typed minutes field, defaulting malformed
// or negative values to 0.
func coerceMinutes(v any) int {
	switch m := v.(type) {
	case float64:
		if m < 0 {
			return 0
		}
		return int(m)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}
