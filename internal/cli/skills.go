package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchantech/practicelog/internal/source"
)

func init() {
	skillsCmd := &cobra.Command{
		Use:   "skills",
		Short: "List tracked skills",
		Run:   runSkillsList,
	}

	addCmd := &cobra.Command{
		Use:   "add <slug>",
		Short: "Register a skill before its data shows up in any source",
		Args:  cobra.ExactArgs(1),
		Run:   runSkillsAdd,
	}

	setCmd := &cobra.Command{
		Use:   "set <slug>",
		Short: "Update a skill's emoji, color, or XP multiplier",
		Args:  cobra.ExactArgs(1),
		Run:   runSkillsSet,
	}
	setCmd.Flags().String("emoji", "", "Display emoji")
	setCmd.Flags().String("color", "", "Chart color as #rrggbb")
	setCmd.Flags().Int("xp-per-min", -1, "XP earned per practiced minute")

	skillsCmd.AddCommand(addCmd, setCmd)
	RootCmd.AddCommand(skillsCmd)
}

func runSkillsList(cmd *cobra.Command, args []string) {
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
		fmt.Println("no skills yet")
		return
	}

	for _, sk := range skills {
		mins, err := s.SkillTotal(sk.Slug)
		if err != nil {
			exitErr("total minutes", err)
		}
		emoji := sk.Emoji
		if emoji == "" {
			emoji = " "
		}
		fmt.Printf("%s %-16s %s  x%d  %d min\n", emoji, sk.Slug, sk.Color, sk.XPPerMin, mins)
	}
}

func runSkillsAdd(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.EnsureSkill(args[0], source.RandomColor()); err != nil {
		exitErr("add skill", err)
	}
	fmt.Printf("added %s\n", args[0])
}

func runSkillsSet(cmd *cobra.Command, args []string) {
	slug := args[0]

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sk, err := s.GetSkill(slug)
	if err != nil {
		exitErr("get skill", err)
	}

	// Unset flags keep the current values.
	emoji := sk.Emoji
	if cmd.Flags().Changed("emoji") {
		emoji, _ = cmd.Flags().GetString("emoji")
	}
	color := sk.Color
	if cmd.Flags().Changed("color") {
		color, _ = cmd.Flags().GetString("color")
	}
	xp := sk.XPPerMin
	if cmd.Flags().Changed("xp-per-min") {
		xp, _ = cmd.Flags().GetInt("xp-per-min")
	}

	if err := s.SetSkillOptions(slug, emoji, color, xp); err != nil {
		exitErr("set skill options", err)
	}
	fmt.Printf("updated %s\n", slug)
}
