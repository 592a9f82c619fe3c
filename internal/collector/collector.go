// Package collector runs the batch jobs that keep fighters_data.json up to
// date. Every job loads the dataset once, works through its fighters one at
// a time and saves once at the end.
package collector

import (
	"context"
	"fighterdata/internal/components/assert"
	"fighterdata/internal/components/chrono"
	"fighterdata/internal/components/telemetry"
	"fighterdata/internal/dataset"
	"fighterdata/internal/fighters"
	"fighterdata/internal/profile"
	"fighterdata/internal/ufcstats"
	"fighterdata/lib/htmlutil"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_collector_scrape_all      = "collector.scrape-all"
	report_collector_add_targets     = "collector.add-targets"
	report_collector_update_targets  = "collector.update-targets"
	report_collector_refresh_history = "collector.refresh-history"
	report_collector_history         = "collector.history"
	report_collector_ages_filled     = "collector.ages-filled"
)

type ProfileFetcher interface {
	Profile(ctx context.Context, href string) (*goquery.Document, error)
}

type Store interface {
	Load(ctx context.Context) ([]fighters.Fighter, error)
	Save(ctx context.Context, records []fighters.Fighter) error
}

// Summary counts what a job did. Processed is every fighter the job looked
// at, Total is the dataset size after the job.
type Summary struct {
	Processed   int
	Added       int
	Updated     int
	WithHistory int
	Skipped     int
	Failed      int
	Total       int
}

type Collector struct {
	fetcher   ProfileFetcher
	directory *ufcstats.Directory
	store     Store
	clock     chrono.API
	tel       telemetry.API
}

func New(
	fetcher ProfileFetcher,
	directory *ufcstats.Directory,
	store Store,
	clock chrono.API,
	tel telemetry.API,
) *Collector {
	assert.NotNil(fetcher)
	assert.NotNil(directory)
	assert.NotNil(store)
	assert.NotNil(clock)
	assert.NotNil(tel)

	return &Collector{
		fetcher:   fetcher,
		directory: directory,
		store:     store,
		clock:     clock,
		tel:       telemetry.NewScopedAPI("collector", tel),
	}
}

func (c *Collector) document(ctx context.Context, href string) (htmlutil.DocumentView, error) {
	doc, err := c.fetcher.Profile(ctx, href)
	if err != nil {
		return nil, err
	}
	return htmlutil.NewView(doc.Selection), nil
}

func (c *Collector) scrape(ctx context.Context, href string) (fighters.Fighter, error) {
	doc, err := c.document(ctx, href)
	if err != nil {
		return fighters.Fighter{}, err
	}
	f, history, err := profile.Extract(doc, c.clock)
	if err != nil {
		return fighters.Fighter{}, fmt.Errorf("extract %s: %w", href, err)
	}
	if history.Diagnostic != nil {
		c.tel.ReportWarning(report_collector_history, history.Diagnostic, f.Name)
	}
	return f, nil
}

// finish saves records even when ctx was canceled mid-job, so an interrupted
// run keeps the fighters it already processed.
func (c *Collector) finish(ctx context.Context, records []fighters.Fighter, summary *Summary) error {
	summary.Total = len(records)
	err := c.store.Save(context.WithoutCancel(ctx), records)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

func countHistory(f fighters.Fighter, summary *Summary) {
	if len(f.LastFights) > 0 {
		summary.WithHistory++
	}
}

// ScrapeAll scrapes every fighter in the site listing (or the first limit
// of them when limit is positive) and appends the ones not yet in the
// dataset.
func (c *Collector) ScrapeAll(ctx context.Context, limit int) (Summary, error) {
	var summary Summary
	records, err := c.store.Load(ctx)
	if err != nil {
		return summary, err
	}

	entries, err := c.directory.All(ctx)
	if err != nil {
		if len(entries) == 0 {
			return summary, err
		}
		c.tel.ReportWarning(report_collector_scrape_all, fmt.Errorf("partial listing: %w", err))
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	var scraped []fighters.Fighter
	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		summary.Processed++
		c.tel.ReportDebug("scraping", i+1, len(entries), entry.FullName())

		f, err := c.scrape(ctx, entry.Href)
		if err != nil {
			summary.Failed++
			c.tel.ReportWarning(report_collector_scrape_all, err, entry.FullName())
			continue
		}
		countHistory(f, &summary)
		scraped = append(scraped, f)
	}

	records, summary.Added = dataset.MergeAppend(records, scraped)
	summary.Skipped = len(scraped) - summary.Added

	err = c.finish(ctx, records, &summary)
	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// AddTargets scrapes each target that is not in the dataset yet. Targets
// that cannot be found or fetched are added as placeholders built from the
// details the target carries.
func (c *Collector) AddTargets(ctx context.Context, targets []fighters.Target) (Summary, error) {
	var summary Summary
	records, err := c.store.Load(ctx)
	if err != nil {
		return summary, err
	}

	var incoming []fighters.Fighter
	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}
		summary.Processed++
		if dataset.IndexOf(records, target.Name) >= 0 {
			summary.Skipped++
			continue
		}

		f, err := c.findAndScrape(ctx, target.Name)
		if err != nil {
			summary.Failed++
			c.tel.ReportWarning(report_collector_add_targets, err, target.Name)
			f = fighters.Placeholder(target)
		}
		countHistory(f, &summary)
		incoming = append(incoming, f)
	}

	var added int
	records, added = dataset.MergeAppend(records, incoming)
	summary.Added = added
	summary.Skipped += len(incoming) - added

	err = c.finish(ctx, records, &summary)
	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

func (c *Collector) findAndScrape(ctx context.Context, name string) (fighters.Fighter, error) {
	entry, err := c.directory.Find(ctx, name)
	if err != nil {
		return fighters.Fighter{}, err
	}
	return c.scrape(ctx, entry.Href)
}

// UpdateTargets re-scrapes each named fighter and replaces its record.
// Fighters that cannot be found or fetched keep their current record.
func (c *Collector) UpdateTargets(ctx context.Context, names []string) (Summary, error) {
	var summary Summary
	records, err := c.store.Load(ctx)
	if err != nil {
		return summary, err
	}

	var incoming []fighters.Fighter
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		summary.Processed++

		f, err := c.findAndScrape(ctx, name)
		if err != nil {
			summary.Failed++
			c.tel.ReportWarning(report_collector_update_targets, err, name)
			continue
		}
		// the site may spell the name differently from the dataset, the
		// dataset spelling is the key readers look fighters up by
		if dataset.IndexOf(records, f.Name) < 0 {
			if i := dataset.IndexOf(records, name); i >= 0 {
				f.Name = records[i].Name
			}
		}
		countHistory(f, &summary)
		incoming = append(incoming, f)
	}

	records, summary.Updated = dataset.MergeReplaceByName(records, incoming)
	summary.Skipped = len(incoming) - summary.Updated

	err = c.finish(ctx, records, &summary)
	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

type RefreshOptions struct {
	// OnlyMissing restricts the refresh to fighters with no recorded fights.
	OnlyMissing bool
	// Names restricts the refresh to the named fighters when not empty.
	Names []string
}

func (o RefreshOptions) selects(f fighters.Fighter) bool {
	if o.OnlyMissing && len(f.LastFights) > 0 {
		return false
	}
	if len(o.Names) == 0 {
		return true
	}
	for _, name := range o.Names {
		if fighters.SameName(name, f.Name) {
			return true
		}
	}
	return false
}

// RefreshHistory fills in missing ages and re-reads the recent fights of
// the selected fighters. A fighter whose page cannot be fetched, or whose
// history table cannot be read cleanly, keeps the fights it already has.
func (c *Collector) RefreshHistory(ctx context.Context, opts RefreshOptions) (Summary, error) {
	var summary Summary
	records, err := c.store.Load(ctx)
	if err != nil {
		return summary, err
	}

	filled := dataset.FillAges(records, c.clock.Now())
	c.tel.ReportCount(report_collector_ages_filled, int64(filled))

	for _, f := range records {
		if ctx.Err() != nil {
			break
		}
		if !opts.selects(f) {
			continue
		}
		summary.Processed++

		fights, err := c.history(ctx, f)
		if err != nil {
			summary.Failed++
			c.tel.ReportWarning(report_collector_refresh_history, err, f.Name)
			countHistory(f, &summary)
			continue
		}
		dataset.ReplaceHistory(records, f.Name, fights)
		summary.Updated++
		if len(fights) > 0 {
			summary.WithHistory++
		}
	}

	err = c.finish(ctx, records, &summary)
	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// history returns the fights to store for f. A diagnostic is only accepted
// when f has no fights yet and the page still yielded some.
func (c *Collector) history(ctx context.Context, f fighters.Fighter) ([]fighters.FightSummary, error) {
	entry, err := c.directory.Find(ctx, f.Name)
	if err != nil {
		return nil, err
	}
	doc, err := c.document(ctx, entry.Href)
	if err != nil {
		return nil, err
	}
	history := profile.ExtractFightHistory(doc, f.Name)
	if history.Diagnostic == nil {
		return history.Fights, nil
	}
	if len(f.LastFights) == 0 && len(history.Fights) > 0 {
		c.tel.ReportWarning(report_collector_history, history.Diagnostic, f.Name)
		return history.Fights, nil
	}
	return nil, history.Diagnostic
}

// Lookup resolves name to its listing entry. When it cannot, the error is a
// *ufcstats.NotFoundError carrying the closest names.
func (c *Collector) Lookup(ctx context.Context, name string) (ufcstats.ListingEntry, error) {
	return c.directory.Find(ctx, name)
}
