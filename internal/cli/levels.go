package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchantech/practicelog/internal/level"
)

func init() {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show level, title, and XP progress per skill",
		Run:   runLevels,
	}

	RootCmd.AddCommand(cmd)
}

func runLevels(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	skills, err := s.ListSkills()
	if err != nil {
		exitErr("list skills", err)
	}
	if len(skills) == 0 {
		fmt.Println("no skills cached yet; run refresh first")
		return
	}

	for _, sk := range skills {
		mins, err := s.SkillTotal(sk.Slug)
		if err != nil {
			exitErr("total minutes", err)
		}
		p := level.Progress(mins)
		xp := level.XP(mins, sk.XPPerMin)

		name := sk.Slug
		if sk.Emoji != "" {
			name = sk.Emoji + " " + sk.Slug
		}
		if p.Level == level.MaxLevel {
			fmt.Printf("%-20s lvl %3d  %s  (%d XP, max level)\n", name, p.Level, p.Title, xp)
			continue
		}
		fmt.Printf("%-20s lvl %3d  %s  (%d XP, %d min to next)\n",
			name, p.Level, p.Title, xp, p.RemainingMinutes)
	}
}
