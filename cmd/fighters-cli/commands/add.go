package commands

import (
	"fighterdata/internal/fighters"
	"fighterdata/lib/serviceutil"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

// targetsFor prefers names given on the command line over the configured
// targets. Configured details are kept for names that appear in both.
func targetsFor(args []string) []fighters.Target {
	if len(args) == 0 {
		return config.Targets
	}
	targets := make([]fighters.Target, len(args))
	for i, name := range args {
		targets[i] = fighters.Target{Name: name}
		for _, configured := range config.Targets {
			if fighters.SameName(configured.Name, name) {
				targets[i] = configured
				break
			}
		}
	}
	return targets
}

var addCmd = &cobra.Command{
	Use:   "add [names...]",
	Short: "Adds the named fighters (or the configured targets) that are not in the dataset yet.",
	Run: func(cmd *cobra.Command, args []string) {
		targets := targetsFor(args)
		if len(targets) == 0 {
			serviceutil.Fatal("nothing to add", fmt.Errorf("no names given and no targets configured"))
		}
		summary, err := collect.AddTargets(cmd.Context(), targets)
		if err != nil {
			serviceutil.Fatal("add failed", err)
		}
		printSummary("add", summary)
	},
}
