package commands

import (
	"fighterdata/internal/fighters"
	"fighterdata/lib/serviceutil"
	"fighterdata/lib/textutil"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showFilter string

func init() {
	showCmd.Flags().StringVar(&showFilter, "name", "", "Only show fighters whose name contains this.")
	rootCmd.AddCommand(showCmd)
}

func formatFights(fights []fighters.FightSummary) string {
	lines := make([]string, len(fights))
	for i, f := range fights {
		line := fmt.Sprintf("%s vs %s", f.Result, f.Opponent)
		if f.Method != "" {
			line += " by " + f.Method
		}
		if f.Round != "" {
			line += " (R" + f.Round + ")"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

var showCmd = &cobra.Command{
	Use:   "show [--name <substring>]",
	Short: "Prints the dataset as a table.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := store.Load(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to load dataset", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Nickname", "Record", "Age", "Weight", "Stance", "Last fights"})
		shown := 0
		for _, f := range records {
			if showFilter != "" && !textutil.MatchName(f.Name, []string{showFilter}) {
				continue
			}
			age := fighters.Unknown
			if f.Age != nil {
				age = fmt.Sprint(*f.Age)
			}
			t.AppendRow(table.Row{f.Name, f.Nickname, f.Record(), age, f.Weight, f.Stance, formatFights(f.LastFights)})
			shown++
		}
		t.AppendFooter(table.Row{"", "", "", "", "", "Shown", fmt.Sprintf("%d / %d", shown, len(records))})
		t.Render()
	},
}
