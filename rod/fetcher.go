// Package rod provides a browser-backed implementation of vidinfo.Fetcher
// for embed pages that only render their player config with JavaScript
// or sit behind a JavaScript challenge.
package rod

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/vidinfo"
	vidinfohttp "github.com/fwojciec/vidinfo/http"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default page load timeout.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements vidinfo.Fetcher at compile time.
var _ vidinfo.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered documents using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page load timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Get navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var html string
	err := f.visit(ctx, url, headers, func(page *rod.Page) error {
		var err error
		html, err = page.HTML()
		return err
	})
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

// GetJSON navigates to the URL and decodes the document text as JSON.
func (f *Fetcher) GetJSON(ctx context.Context, url string, headers map[string]string) (any, error) {
	var text string
	err := f.visit(ctx, url, headers, func(page *rod.Page) error {
		body, err := page.Element("body")
		if err != nil {
			return err
		}
		text, err = body.Text()
		return err
	})
	if err != nil {
		return nil, err
	}

	v, err := vidinfohttp.DecodeJSON([]byte(strings.TrimSpace(text)))
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

// visit opens a page, loads url and hands the loaded page to read.
// Document responses outside 2xx are reported as *vidinfo.FetchError.
func (f *Fetcher) visit(ctx context.Context, url string, headers map[string]string, read func(*rod.Page) error) error {
	if f.manager.closed.Load() {
		return vidinfo.Errorf(vidinfo.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return &vidinfo.FetchError{URL: url, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return &vidinfo.FetchError{URL: url, Err: err}
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if len(headers) > 0 {
		pairs := make([]string, 0, len(headers)*2)
		for k, v := range headers {
			pairs = append(pairs, k, v)
		}
		cleanup, err := page.SetExtraHeaders(pairs)
		if err != nil {
			return &vidinfo.FetchError{URL: url, Err: err}
		}
		defer cleanup()
	}

	var status atomic.Int64
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) {
		if e.Type == proto.NetworkResourceTypeDocument && status.Load() == 0 {
			status.Store(int64(e.Response.Status))
		}
	})
	go wait()

	if err := page.Navigate(url); err != nil {
		return &vidinfo.FetchError{URL: url, Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		return &vidinfo.FetchError{URL: url, Err: err}
	}

	if s := int(status.Load()); s != 0 && (s < 200 || s > 299) {
		return &vidinfo.FetchError{Status: s, URL: url}
	}

	if err := read(page); err != nil {
		return &vidinfo.FetchError{URL: url, Err: err}
	}
	return nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
