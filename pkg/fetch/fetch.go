// Package fetch retrieves remote popover content.
//
// A popover configured with a URL-like content value resolves its body
// through a Fetcher. Failures are non-fatal by design: the widget engine
// logs them and keeps the popover hidden, so this package reports errors
// with structured codes but never retries — a popover that cannot load has
// simply nothing to show, and the next interaction will try again.
//
// Cancellation uses context: the widget instance cancels the context of a
// fetch that is superseded by a newer one or whose instance is destroyed.
//
// Fetched bodies can be kept in a cache (see package cache) so repeated
// shows of the same content do not refetch.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/observability"
)

const (
	// httpTimeout bounds a single content request.
	httpTimeout = 10 * time.Second

	// maxBodySize bounds a content response; popover bodies are small
	// markup fragments, anything bigger is a misconfiguration.
	maxBodySize = 1 << 20 // 1 MiB

	// DefaultTTL is how long fetched content stays cached.
	DefaultTTL = time.Hour
)

// Fetcher retrieves content bodies over HTTP with optional caching.
type Fetcher struct {
	client *http.Client
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient replaces the default HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithCache stores fetched bodies in c with the given TTL.
// A ttl of zero uses DefaultTTL.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.cache = c
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

// WithLogger sets the logger for fetch diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// New creates a Fetcher. Without options it uses a 10 second timeout, no
// caching, and the default logger.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: httpTimeout},
		cache:  cache.NewNullCache(),
		ttl:    DefaultTTL,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the content at url. The context governs cancellation: a
// cancelled fetch returns a FETCH_ABORTED error. HTTP failures map to
// NOT_FOUND (404) or NETWORK_ERROR codes. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := cache.ContentKey(url)
	if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "content")
		f.logger.Debug("content cache hit", "url", url)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "content")

	observability.Fetch().OnFetchStart(ctx, url)
	start := time.Now()

	data, err := f.do(ctx, url)
	observability.Fetch().OnFetchComplete(ctx, url, len(data), time.Since(start), err)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFetchAborted) {
			observability.Fetch().OnFetchAbort(ctx, url)
		}
		return nil, err
	}

	if err := f.cache.Set(ctx, key, data, f.ttl); err != nil {
		f.logger.Debug("content cache write failed", "url", url, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "content", len(data))
	}
	return data, nil
}

func (f *Fetcher) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "build request for %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeFetchAborted, ctx.Err(), "fetch %s", url)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "content not found: %s", url)
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeFetchAborted, ctx.Err(), "fetch %s", url)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)
	}
	return data, nil
}
