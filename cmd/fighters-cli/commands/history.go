package commands

import (
	"fighterdata/internal/collector"
	"fighterdata/lib/serviceutil"

	"github.com/spf13/cobra"
)

var historyMissingOnly bool

func init() {
	historyCmd.Flags().BoolVar(&historyMissingOnly, "missing-only", false, "Only refresh fighters with no recorded fights.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--missing-only] [names...]",
	Short: "Fills in missing ages and refreshes the last three fights of every (or every named) fighter.",
	Run: func(cmd *cobra.Command, args []string) {
		summary, err := collect.RefreshHistory(cmd.Context(), collector.RefreshOptions{
			OnlyMissing: historyMissingOnly,
			Names:       args,
		})
		if err != nil {
			serviceutil.Fatal("history refresh failed", err)
		}
		printSummary("history", summary)
	},
}
