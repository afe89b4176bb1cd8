// Package http provides an HTTP-based implementation of vidinfo.Fetcher
// for site APIs, embed pages and streaming manifests.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/vidinfo"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent is sent unless the caller overrides User-Agent.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// ErrBodyTooLarge is wrapped by a FetchError when a response exceeds the
// configured body size limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Ensure Fetcher implements vidinfo.Fetcher at compile time.
var _ vidinfo.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents using plain HTTP requests. It retries
// transient failures with backoff and rate limits requests per host.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
	delays      []time.Duration
	limiter     *HostLimiter
	jar         http.CookieJar
	logger      LogFunc
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

// WithRetryDelays sets the backoff delays between attempts. An empty slice
// disables retries. Defaults to DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRetryLogger sets a function called before each retry.
func WithRetryLogger(logger LogFunc) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithRateLimit limits requests to rps per host. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = NewHostLimiter(rps)
	}
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithCookieJar attaches a cookie jar to outgoing requests.
func WithCookieJar(jar http.CookieJar) Option {
	return func(f *Fetcher) {
		f.jar = jar
	}
}

// WithMaxBodySize sets the maximum number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		delays:      DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     f.jar,
	}

	return f
}

// Get retrieves the body of url. Caller headers override the defaults.
func (f *Fetcher) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return withRetry(ctx, url, f.delays, f.logger, func(ctx context.Context) ([]byte, error) {
		return f.get(ctx, url, headers)
	})
}

// GetJSON retrieves url and decodes the body with numbers preserved as
// json.Number.
func (f *Fetcher) GetJSON(ctx context.Context, url string, headers map[string]string) (any, error) {
	h := map[string]string{"Accept": "application/json"}
	for k, v := range headers {
		h[k] = v
	}

	body, err := f.Get(ctx, url, h)
	if err != nil {
		return nil, err
	}

	v, err := DecodeJSON(body)
	if err != nil {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EEXTRACT,
			Message: "invalid JSON from " + url,
			Stage:   vidinfo.StageParse,
			Err:     err,
		}
	}
	return v, nil
}

// DecodeJSON decodes a single JSON document into the generic value set,
// keeping numbers as json.Number.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, &vidinfo.FetchError{URL: rawURL, Err: fmt.Errorf("invalid URL")}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, &vidinfo.FetchError{URL: rawURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &vidinfo.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &vidinfo.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &vidinfo.FetchError{Status: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, &vidinfo.FetchError{URL: rawURL, Err: err}
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, &vidinfo.FetchError{URL: rawURL, Err: ErrBodyTooLarge}
	}

	return body, nil
}

// Close releases resources. For HTTP fetcher this only drops idle
// connections since http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
