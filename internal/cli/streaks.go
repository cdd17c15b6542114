package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchantech/practicelog/internal/dates"
	"github.com/benchantech/practicelog/internal/level"
	"github.com/benchantech/practicelog/internal/streak"
)

func init() {
	cmd := &cobra.Command{
		Use:   "streaks",
		Short: "Show the current and longest practice streaks",
		Run:   runStreaks,
	}

	RootCmd.AddCommand(cmd)
}

func runStreaks(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	totals, err := s.DailyTotals()
	if err != nil {
		exitErr("daily totals", err)
	}

	st := streak.Compute(totals, dates.Today())

	skills, err := s.ListSkills()
	if err != nil {
		exitErr("list skills", err)
	}
	totalXP := 0
	for _, sk := range skills {
		mins, err := s.SkillTotal(sk.Slug)
		if err != nil {
			exitErr("total minutes", err)
		}
		totalXP += level.XP(mins, sk.XPPerMin)
	}

	fmt.Printf("current streak: %d day(s)\n", st.Current)
	fmt.Printf("longest streak: %d day(s)\n", st.Max)
	fmt.Printf("total XP:       %d\n", totalXP)
}
