package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchantech/practicelog/internal/aggregate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a minutes table over the reporting window",
		Run:   runReport,
	}

	cmd.Flags().StringP("group-by", "g", "", "Bucket labels by Day, Week, Month, Quarter, or Year (default: the group_by setting)")

	RootCmd.AddCommand(cmd)
}

func runReport(cmd *cobra.Command, args []string) {
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

	groupBy, _ := cmd.Flags().GetString("group-by")
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

	// Header row, then one row per skill, then a totals row.
	fmt.Printf("%-16s", "skill")
	for _, label := range grouped.Labels {
		fmt.Printf("  %10s", label)
	}
	fmt.Printf("  %10s\n", "total")

	colTotals := make(map[string]int, len(grouped.Labels))
	for _, slug := range slugs {
		fmt.Printf("%-16s", slug)
		for _, label := range grouped.Labels {
			v := grouped.Data[slug][label]
			colTotals[label] += v
			fmt.Printf("  %10d", v)
		}
		fmt.Printf("  %10d\n", grouped.Total(slug))
	}

	fmt.Printf("%-16s", "all")
	sum := 0
	for _, label := range grouped.Labels {
		sum += colTotals[label]
		fmt.Printf("  %10d", colTotals[label])
	}
	fmt.Printf("  %10d\n", sum)
}
