package commands

import (
	"fighterdata/lib/serviceutil"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var scrapeLimit int

func init() {
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "Only scrape the first n fighters of the listing, 0 scrapes all of them.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--limit <n>]",
	Short: "Scrapes every fighter on ufcstats.com and appends the ones not in the dataset.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()
		summary, err := collect.ScrapeAll(cmd.Context(), scrapeLimit)
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info("scraping time", "seconds", time.Since(start).Seconds())
		printSummary("scrape", summary)
	},
}
