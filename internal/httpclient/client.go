// Package httpclient provides the HTTP client used to retrieve feeds.
//
// IMPORTANT: Callers MUST close response bodies:
//
//	resp, err := client.Get(ctx, url)
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()  // Required even on non-2xx status
//
// All clients share one pooled transport. Each Client additionally spaces
// out consecutive requests to the same host with a token-bucket limiter so
// that sources sharing a domain are not hit back to back.
package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	// Shared transport for connection pooling
	sharedTransport *http.Transport
	transportOnce   sync.Once
)

// getSharedTransport returns the shared transport with connection pooling settings.
func getSharedTransport() *http.Transport {
	transportOnce.Do(func() {
		sharedTransport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		}
	})
	return sharedTransport
}

// Options configures a Client.
type Options struct {
	Timeout      time.Duration // whole-request timeout, 0 = 30s
	HostInterval time.Duration // minimum spacing per host, 0 = unlimited
	Burst        int           // requests allowed before spacing applies, 0 = 1
	UserAgent    string
}

// Client issues GET requests with per-host rate limiting.
// Safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
	interval  time.Duration
	burst     int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Client on the shared transport.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &Client{
		http: &http.Client{
			Transport: getSharedTransport(),
			Timeout:   opts.Timeout,
		},
		userAgent: opts.UserAgent,
		interval:  opts.HostInterval,
		burst:     opts.Burst,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// limiter returns the limiter for host, creating it on first use.
func (c *Client) limiter(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[host]
	if !ok {
		limit := rate.Inf
		if c.interval > 0 {
			limit = rate.Every(c.interval)
		}
		l = rate.NewLimiter(limit, c.burst)
		c.limiters[host] = l
	}
	return l
}

// Get performs a GET request for rawURL after waiting for the host's limiter.
// The wait respects ctx cancellation.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if err := c.limiter(u.Host).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	return c.http.Do(req)
}
