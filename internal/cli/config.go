package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Run:   runConfigList,
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		Run:   runConfigGet,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		Run:   runConfigSet,
	}

	clearCmd := &cobra.Command{
		Use:   "clear-cache",
		Short: "Drop all cached practice data (settings and skills survive)",
		Run:   runClearCache,
	}

	configCmd.AddCommand(getCmd, setCmd, clearCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	settings, err := s.ListSettings()
	if err != nil {
		exitErr("list settings", err)
	}
	for _, st := range settings {
		fmt.Printf("%-12s %s\n", st.Key, st.Value)
	}
}

func runConfigGet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	value, err := s.GetSetting(args[0])
	if err != nil {
		exitErr("get setting", err)
	}
	fmt.Println(value)
}

func runConfigSet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.SetSetting(args[0], args[1]); err != nil {
		exitErr("set setting", err)
	}
}

func runClearCache(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ClearCache(); err != nil {
		exitErr("clear cache", err)
	}
	fmt.Println("cache cleared")
}
