// client.go only knows how to fetch and parse ufcstats.com pages, it does
// not know anything about how the dataset uses them.

package ufcstats

import (
	"bytes"
	"context"
	"errors"
	"fighterdata/internal/components/assert"
	"fighterdata/internal/components/telemetry"
	"fighterdata/lib/htmlutil"
	"fighterdata/lib/restyutil"
	"fmt"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_listing = "client.listing"
	report_client_profile = "client.profile"
)

const (
	DefaultBaseUrl      = "http://ufcstats.com"
	DefaultRequestDelay = time.Second

	listingPath = "/statistics/fighters"
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// ListingEntry is one row of an alphabetical fighter listing.
type ListingEntry struct {
	First    string
	Last     string
	Nickname string
	Href     string
}

func (e ListingEntry) FullName() string {
	return strings.TrimSpace(e.First + " " + e.Last)
}

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// RequestDelay is the minimum pause between two requests, it defaults
	// to DefaultRequestDelay. Negative values disable the pause.
	RequestDelay time.Duration
	// Dump receives a copy of every exchange when set.
	Dump restyutil.Output
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("ufcstats", tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(time.Second * 30)

	delay := opts.RequestDelay
	if delay == 0 {
		delay = DefaultRequestDelay
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	// burst of 1 so consecutive requests are always spaced by delay
	rateLimiter := rate.NewLimiter(limit, 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.Dump(httpClient, opts.Dump)

	return &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status())
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}

// Listing fetches every fighter whose last name starts with letter.
func (c *Client) Listing(ctx context.Context, letter string) ([]ListingEntry, error) {
	doc, err := c.get(ctx, listingPath, map[string]string{
		"char": letter,
		"page": "all",
	})
	if err != nil {
		c.tel.ReportBroken(report_client_listing, err, letter)
		return nil, fmt.Errorf("listing %s: %w", letter, err)
	}
	entries := parseListing(doc.Selection)
	c.tel.ReportDebug("listing fetched", letter, len(entries))
	return entries, nil
}

func parseListing(doc *goquery.Selection) []ListingEntry {
	entries := []ListingEntry{}
	doc.Find("table.b-statistics__table tr.b-statistics__table-row").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		anchors := htmlutil.GetAnchors(cells.Eq(0).Find("a"))
		if len(anchors) == 0 {
			return
		}
		entry := ListingEntry{
			First: anchors[0].Name,
			Last:  htmlutil.NormalizeText(cells.Eq(1).Text()),
			Href:  anchors[0].Href,
		}
		if cells.Length() > 2 {
			entry.Nickname = htmlutil.NormalizeText(cells.Eq(2).Text())
		}
		entries = append(entries, entry)
	})
	return entries
}

// Profile fetches a fighter detail page. href may be absolute or relative
// to the base url.
func (c *Client) Profile(ctx context.Context, href string) (*goquery.Document, error) {
	doc, err := c.get(ctx, href, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_profile, err, href)
		return nil, fmt.Errorf("profile %s: %w", href, err)
	}
	return doc, nil
}
