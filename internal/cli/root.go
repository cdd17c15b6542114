// Package cli implements the practicelog CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/benchantech/practicelog/internal/aggregate"
	"github.com/benchantech/practicelog/internal/source"
	"github.com/benchantech/practicelog/internal/store"
	"github.com/benchantech/practicelog/internal/tui"
)

var dbPath string

// RootCmd is the top-level command. Running it with no subcommand opens
// the interactive dashboard.
var RootCmd = &cobra.Command{
	Use:   "practicelog",
	Short: "Track practice minutes, levels, and streaks",
	Long:  "A practice tracker that caches spreadsheet and per-day log data locally,\nthen renders levels, streaks, and grouped reports.",
	Run:   runRoot,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $PRACTICELOG_DB or ~/.config/practicelog/practicelog.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("PRACTICELOG_DB"); env != "" {
		return env
	}
	path, err := store.DefaultDBPath()
	if err != nil {
		exitErr("resolve db path", err)
	}
	return path
}

func openStore() (*store.Store, error) {
	return store.New(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func runRoot(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := tui.Run(s); err != nil {
		exitErr("run dashboard", err)
	}
}

func window(s *store.Store) []string {
	return aggregate.SettingsWindow(s, time.Now().UTC())
}

// slugList returns the roster in listing order.
func slugList(s *store.Store) ([]string, error) {
	skills, err := s.ListSkills()
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(skills))
	for _, sk := range skills {
		slugs = append(slugs, sk.Slug)
	}
	return slugs, nil
}

// newRefresher wires the per-day log fetcher from the configured GitHub
// Pages source. With no source configured, missing days resolve to 0 and
// are cached as empty.
func newRefresher(s *store.Store) *aggregate.Refresher {
	username := s.SettingOr("username", "")
	repo := s.SettingOr("repo", "")
	if username == "" || repo == "" {
		zero := aggregate.FetcherFunc(func(_ context.Context, _, _ string) int { return 0 })
		return aggregate.NewRefresher(s, zero)
	}
	return aggregate.NewRefresher(s, source.NewDayLogClient(source.GitHubPagesURL(username, repo)))
}
