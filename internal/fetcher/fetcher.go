// Package fetcher downloads paginated search result pages from the site and
// extracts raw listing payloads from them.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"yad2watch/internal/model"
)

// BaseURL is the search results endpoint for car listings.
const BaseURL = "https://www.yad2.co.il/vehicles/cars"

// Fetch failure modes. Transport and HTTP-status failures other than
// blocking are returned as plain wrapped errors (transient network errors).
var (
	// ErrRateLimited reports that the site answered with a blocking status.
	// The fetch fails fast; retrying is left to the next scheduled cycle.
	ErrRateLimited = errors.New("rate limited by site")

	// ErrBadResponse reports a page whose shape does not match the expected
	// search results markup.
	ErrBadResponse = errors.New("unexpected response shape")
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Policy bundles the politeness knobs applied to every outbound request.
// Zero MaxDelay disables the randomized pause and a nil Limiter disables
// rate capping, which keeps tests deterministic.
type Policy struct {
	MinDelay   time.Duration
	MaxDelay   time.Duration
	MaxPages   int
	UserAgents []string
	Headers    map[string]string
	Limiter    *rate.Limiter
}

// DefaultPolicy returns the production politeness settings: a 1-3s
// randomized pause before each request, at most one request every two
// seconds overall, and a rotating pool of browser user agents.
func DefaultPolicy() Policy {
	return Policy{
		MinDelay: 1 * time.Second,
		MaxDelay: 3 * time.Second,
		MaxPages: 5,
		UserAgents: []string{
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language": "he-IL,he;q=0.9,en;q=0.8",
			"DNT":             "1",
			"Connection":      "keep-alive",
		},
		Limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// RawListing is one listing payload as scraped from the page, before
// normalization. All fields are raw strings; Page records which result page
// the payload came from so later pages win on duplicate ids.
type RawListing struct {
	ID       string
	Title    string
	Price    string
	Year     string
	Km       string
	Location string
	Href     string
	Page     int
}

// Fetcher downloads and extracts listing payloads for one filter at a time.
type Fetcher struct {
	client  HTTPClient
	baseURL string
	policy  Policy
	log     *slog.Logger
}

// New creates a Fetcher with the given HTTP client and politeness policy.
func New(client HTTPClient, policy Policy, log *slog.Logger) *Fetcher {
	if policy.MaxPages <= 0 {
		policy.MaxPages = 5
	}
	return &Fetcher{
		client:  client,
		baseURL: BaseURL,
		policy:  policy,
		log:     log,
	}
}

// SetBaseURL overrides the target endpoint (useful for testing).
func (f *Fetcher) SetBaseURL(u string) {
	f.baseURL = u
}

// Fetch retrieves every result page for the filter and returns the raw
// listing payloads in page order. Paging stops at the first empty page or
// at the policy's page bound, whichever comes first.
func (f *Fetcher) Fetch(ctx context.Context, flt model.Filter) ([]RawListing, error) {
	var all []RawListing
	for page := 1; page <= f.policy.MaxPages; page++ {
		items, err := f.fetchPage(ctx, flt, page)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		all = append(all, items...)
	}
	f.log.Debug("fetch complete", "filter", flt.Name, "listings", len(all))
	return all, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, flt model.Filter, page int) ([]RawListing, error) {
	if err := f.pause(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.pageURL(flt, page), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range f.policy.Headers {
		req.Header.Set(k, v)
	}
	if ua := f.userAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	f.log.Debug("requesting page", "filter", flt.Name, "page", page)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get page %d: %w", page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("filter %q page %d: status %d: %w", flt.Name, page, resp.StatusCode, ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("filter %q page %d: unexpected status %d", flt.Name, page, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("filter %q page %d: parse html: %w", flt.Name, page, ErrBadResponse)
	}

	feed := doc.Find("[class*='feed-list'], [data-testid='feed-list']")
	if feed.Length() == 0 {
		return nil, fmt.Errorf("filter %q page %d: no results container: %w", flt.Name, page, ErrBadResponse)
	}

	var items []RawListing
	feed.First().Find("[class*='feed-item-base_feedItemBox'], [data-testid^='item-']").
		Each(func(_ int, sel *goquery.Selection) {
			items = append(items, extractListing(sel, page))
		})
	return items, nil
}

func (f *Fetcher) pageURL(flt model.Filter, page int) string {
	q := url.Values{}
	for k, v := range flt.Params {
		if v != "" {
			q.Set(k, v)
		}
	}
	q.Set("page", fmt.Sprintf("%d", page))
	return f.baseURL + "?" + q.Encode()
}

func (f *Fetcher) pause(ctx context.Context) error {
	if f.policy.Limiter != nil {
		if err := f.policy.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}
	if f.policy.MaxDelay <= 0 {
		return nil
	}
	d := f.policy.MinDelay
	if spread := f.policy.MaxDelay - f.policy.MinDelay; spread > 0 {
		d += time.Duration(rand.Int63n(int64(spread)))
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fetcher) userAgent() string {
	if len(f.policy.UserAgents) == 0 {
		return ""
	}
	return f.policy.UserAgents[rand.Intn(len(f.policy.UserAgents))]
}
