package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benchantech/practicelog/internal/aggregate"
	"github.com/benchantech/practicelog/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the reporting window to a CSV or JSON file",
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", "practicelog.csv", "Output file path")
	cmd.Flags().String("format", "", "Output format: csv or json (default: inferred from the file extension)")
	cmd.Flags().StringP("group-by", "g", "", "Bucket labels by Day, Week, Month, Quarter, or Year")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(out), ".")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	slugs, err := slugList(s)
	if err != nil {
		exitErr("list skills", err)
	}
	if len(slugs) == 0 {
		fmt.Println("no skills cached yet; run refresh first")
		return
	}

	if groupBy == "" {
		groupBy, _ = s.GetSetting("group_by")
	}
	g := aggregate.ParseGranularity(groupBy)

	r := newRefresher(s)
	series, err := r.Series(cmd.Context(), slugs, window(s))
	if err != nil {
		exitErr("build series", err)
	}
	grouped := aggregate.Group(series, g)

	switch format {
	case "csv":
		err = export.ToCSV(grouped, slugs, out)
	case "json":
		err = export.ToJSON(grouped, slugs, string(g), out)
	default:
		exitErr("export", fmt.Errorf("unsupported format %q (want csv or json)", format))
	}
	if err != nil {
		exitErr("export", err)
	}
	fmt.Printf("wrote %s (%s, grouped by %s)\n", out, format, g)
}
