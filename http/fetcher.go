// Package http provides an HTTP-based implementation of
// amazonapi.DocumentFetcher. It builds the marketplace URL for a page
// request, applies a per-run rate limit, and keeps a small in-memory
// cache of fetched bodies so repeated page requests within a run do not
// hit the network twice.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	amazonapi "github.com/belo-research/amazon-product-api"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent when no override is configured. Marketplace
// frontends serve a reduced document to unidentified clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultCacheSize bounds the in-memory body cache.
const DefaultCacheSize = 128

// Ensure Fetcher implements amazonapi.DocumentFetcher at compile time.
var _ amazonapi.DocumentFetcher = (*Fetcher)(nil)

// Fetcher retrieves marketplace documents over HTTP.
type Fetcher struct {
	client    *http.Client
	geo       amazonapi.GeoProfile
	baseURL   string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
	cache     *lru.Cache[uint64, string]
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithBaseURL overrides the marketplace origin. Used by tests to point
// the fetcher at a local server.
func WithBaseURL(base string) Option {
	return func(f *Fetcher) {
		f.baseURL = base
	}
}

// WithRateLimit caps outgoing requests at r per second with the given
// burst. No limiter is installed by default.
func WithRateLimit(r float64, burst int) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithCacheSize sets the body cache capacity. A size of 0 disables the
// cache.
func WithCacheSize(size int) Option {
	return func(f *Fetcher) {
		f.cache = nil
		if size > 0 {
			f.cache, _ = lru.New[uint64, string](size)
		}
	}
}

// WithClient supplies a pre-configured http.Client. The timeout option
// is ignored when a client is supplied.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates an HTTP-based Fetcher for the given locale.
func NewFetcher(geo amazonapi.GeoProfile, opts ...Option) *Fetcher {
	f := &Fetcher{
		geo:       geo,
		baseURL:   "https://" + geo.Host(),
		userAgent: DefaultUserAgent,
		timeout:   DefaultFetchTimeout,
	}
	f.cache, _ = lru.New[uint64, string](DefaultCacheSize)
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// FetchDocument retrieves the raw document for one page request.
func (f *Fetcher) FetchDocument(ctx context.Context, req amazonapi.PageRequest) (string, error) {
	url := PageURL(f.baseURL, req)
	key := xxhash.Sum64String(url)

	if f.cache != nil {
		if body, ok := f.cache.Get(key); ok {
			return body, nil
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", amazonapi.Errorf(amazonapi.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		f.cache.Add(key, string(body))
	}
	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
