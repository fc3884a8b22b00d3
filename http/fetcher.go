// Package http provides an HTTP-based implementation of
// commonsmeta.RevisionFetcher backed by the MediaWiki action API.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	xmltree "github.com/beevik/etree"
	"github.com/wikimeta/commonsmeta"
	"github.com/wikimeta/commonsmeta/etree"
)

// DefaultEndpoint is the Wikimedia Commons action API.
const DefaultEndpoint = "https://commons.wikimedia.org/w/api.php"

// DefaultFetchTimeout is the default timeout for API requests.
const DefaultFetchTimeout = 10 * time.Second

// defaultUserAgent identifies the client per Wikimedia API etiquette.
const defaultUserAgent = "commonsmeta (+https://github.com/wikimeta/commonsmeta)"

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Fetcher implements commonsmeta.RevisionFetcher at compile time.
var _ commonsmeta.RevisionFetcher = (*Fetcher)(nil)

// Fetcher retrieves page revisions from a MediaWiki API endpoint. A single
// request returns both representations the extractor needs: the revision
// wikitext and, via rvgeneratexml, the preprocessor parse tree XML.
type Fetcher struct {
	client      *http.Client
	endpoint    string
	userAgent   string
	timeout     time.Duration
	limiter     commonsmeta.Limiter
	retryDelays []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithEndpoint sets the API endpoint. Defaults to DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(f *Fetcher) {
		f.endpoint = endpoint
	}
}

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with API requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLimiter paces requests through the given limiter.
func WithLimiter(l commonsmeta.Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithRetryDelays overrides the backoff delays between fetch attempts.
// This is useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// NewFetcher creates a new Fetcher for the Commons API.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		endpoint:    DefaultEndpoint,
		userAgent:   defaultUserAgent,
		timeout:     DefaultFetchTimeout,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchRevision fetches the latest revision of the page with the given
// title. Returns ENOTFOUND if the page does not exist.
func (f *Fetcher) FetchRevision(ctx context.Context, title string) (*commonsmeta.Revision, error) {
	if title == "" {
		return nil, commonsmeta.Errorf(commonsmeta.EINVALID, "page title required")
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := f.fetchWithRetry(ctx, f.queryURL(title))
	if err != nil {
		return nil, err
	}

	return parseRevision(title, body)
}

// queryURL builds the revisions query for a title. rvgeneratexml makes the
// API attach the preprocessor parse tree to the revision.
func (f *Fetcher) queryURL(title string) string {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "revisions")
	q.Set("titles", title)
	q.Set("rvprop", "content")
	q.Set("rvlimit", "1")
	q.Set("rvgeneratexml", "1")
	q.Set("format", "xml")
	return f.endpoint + "?" + q.Encode()
}

// fetchWithRetry attempts a GET with exponential backoff. With the default
// delays it makes 4 total attempts spaced 1s, 2s, 4s apart.
func (f *Fetcher) fetchWithRetry(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.retryDelays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := f.fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}

	return "", lastErr
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// parseRevision pulls the wikitext and parse tree out of the API's XML
// envelope at /api/query/pages/page/revisions/rev.
func parseRevision(title, body string) (*commonsmeta.Revision, error) {
	doc := xmltree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, commonsmeta.Errorf(commonsmeta.EINTERNAL, "API response: %s", err)
	}

	if e := doc.FindElement("//error"); e != nil {
		return nil, commonsmeta.Errorf(commonsmeta.EINVALID, "API error %s: %s",
			e.SelectAttrValue("code", ""), e.SelectAttrValue("info", ""))
	}

	rev := doc.FindElement("//rev")
	if rev == nil {
		return nil, commonsmeta.Errorf(commonsmeta.ENOTFOUND, "page %q not found", title)
	}

	parseTree := rev.SelectAttrValue("parsetree", "")
	if parseTree == "" {
		return nil, commonsmeta.Errorf(commonsmeta.EINTERNAL, "revision for %q has no parse tree", title)
	}

	return &commonsmeta.Revision{
		Title:     title,
		Wikitext:  etree.FlattenText(rev),
		ParseTree: parseTree,
	}, nil
}
