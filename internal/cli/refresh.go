package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/benchantech/practicelog/internal/source"
)

func init() {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull fresh data from the configured sources into the cache",
		Run:   runRefresh,
	}

	cmd.Flags().Bool("force", false, "Re-fetch days already cached in the reporting window")

	RootCmd.AddCommand(cmd)
}

func runRefresh(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	// The spreadsheet is authoritative where it has columns; ingest it first
	// so per-day fetches only fill the gaps.
	if sheetURL := s.SettingOr("sheet_url", ""); sheetURL != "" {
		client := &http.Client{Timeout: 30 * time.Second}
		sheet, err := source.FetchSheet(cmd.Context(), client, sheetURL, time.Now().UTC())
		if err != nil {
			exitErr("fetch sheet", err)
		}
		if sheet != nil {
			if err := source.Ingest(sheet, s); err != nil {
				exitErr("ingest sheet", err)
			}
			fmt.Printf("sheet: %d skills, %d days\n", len(sheet.Slugs), len(sheet.Dates))
		} else {
			fmt.Println("sheet: no usable data")
		}
	}

	slugs, err := slugList(s)
	if err != nil {
		exitErr("list skills", err)
	}
	if len(slugs) == 0 {
		fmt.Println("no skills known yet; configure a sheet or add skills first")
		return
	}

	days := window(s)
	r := newRefresher(s)
	if force {
		if err := r.Invalidate(slugs, days); err != nil {
			exitErr("invalidate cache", err)
		}
	}
	series, err := r.Series(cmd.Context(), slugs, days)
	if err != nil {
		exitErr("refresh window", err)
	}

	total := 0
	for _, slug := range slugs {
		total += series.Total(slug)
	}
	fmt.Printf("window %s..%s: %d skills, %d minutes cached\n",
		days[0], days[len(days)-1], len(slugs), total)
}
