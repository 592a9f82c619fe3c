package commands

import (
	"errors"
	"fighterdata/internal/ufcstats"
	"fighterdata/lib/serviceutil"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Finds a fighter in the ufcstats.com listing.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		entry, err := collect.Lookup(cmd.Context(), name)

		var notFound *ufcstats.NotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "%s was not found.\n", name)
			if len(notFound.Suggestions) > 0 {
				t := newTable()
				t.AppendHeader(table.Row{"Did you mean"})
				for _, s := range notFound.Suggestions {
					t.AppendRow(table.Row{s})
				}
				t.Render()
			}
			os.Exit(1)
		}
		if err != nil {
			serviceutil.Fatal("lookup failed", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Nickname", "Profile"})
		t.AppendRow(table.Row{entry.FullName(), entry.Nickname, entry.Href})
		t.Render()
	},
}
