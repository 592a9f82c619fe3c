package commands

import (
	"fighterdata/lib/serviceutil"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [names...]",
	Short: "Re-scrapes the named fighters (or the configured targets) and replaces their records.",
	Run: func(cmd *cobra.Command, args []string) {
		targets := targetsFor(args)
		if len(targets) == 0 {
			serviceutil.Fatal("nothing to update", fmt.Errorf("no names given and no targets configured"))
		}
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.Name
		}

		summary, err := collect.UpdateTargets(cmd.Context(), names)
		if err != nil {
			serviceutil.Fatal("update failed", err)
		}
		printSummary("update", summary)
	},
}
