package extract

import (
	"context"
	"slices"
	"sync"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of parallel extractions in ExtractAll
// when the caller passes zero.
const DefaultConcurrency = 4

// Extractor is the entry point for turning locators into MediaInfo.
type Extractor struct {
	router vidinfo.Router
}

// NewExtractor creates an Extractor that routes with router.
func NewExtractor(router vidinfo.Router) *Extractor {
	return &Extractor{router: router}
}

// Extract routes the locator and runs the matching handlers in registration
// order. A handler failing with EAUTH hands over to the next match; any
// other outcome is final. When every match fails with EAUTH the last error
// is returned.
//
// The returned record has Extractor and WebpageURL set and has passed
// validation.
func (e *Extractor) Extract(ctx context.Context, locator string) (*vidinfo.MediaInfo, error) {
	routes := e.router.Routes(locator)
	if len(routes) == 0 {
		return nil, unsupported(locator)
	}

	var lastErr error
	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			return nil, vidinfo.WithContext(err, locator, vidinfo.StageFetch)
		}

		info, err := e.extractWith(ctx, locator, route)
		if err == nil {
			return info, nil
		}
		lastErr = err
		if vidinfo.ErrorCode(err) != vidinfo.EAUTH {
			break
		}
	}
	return nil, lastErr
}

func (e *Extractor) extractWith(ctx context.Context, locator string, route vidinfo.Route) (*vidinfo.MediaInfo, error) {
	info, err := route.Handler.Extract(ctx, route.ID)
	if err != nil {
		return nil, vidinfo.WithContext(err, locator, "")
	}
	if info == nil {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EEXTRACT,
			Message: route.Handler.Name() + " returned no result",
			Locator: locator,
			Stage:   vidinfo.StageAssemble,
		}
	}

	info.Extractor = route.Handler.Name()
	info.WebpageURL = locator
	if err := info.Validate(); err != nil {
		return nil, vidinfo.WithContext(err, locator, vidinfo.StageAssemble)
	}
	return info, nil
}

// Result is the outcome of one locator in ExtractAll.
type Result struct {
	Locator string
	Info    *vidinfo.MediaInfo
	Err     error
	// Duplicate is set when an earlier locator in the batch normalizes to
	// the same value. The result then shares that locator's Info and Err.
	Duplicate bool
}

// ProgressFunc is called after each distinct locator finishes. Calls are
// serialized.
type ProgressFunc func(completed, total int, result Result)

// ExtractAll extracts every locator with at most concurrency extractions in
// flight. Results are in input order; repeated locators are extracted once.
// Failures are reported per result and never stop the batch.
func (e *Extractor) ExtractAll(ctx context.Context, locators []string, concurrency int, progress ProgressFunc) []Result {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(locators))
	keys := make([]string, len(locators))
	filter := bloom.NewFilter(uint(len(locators)), 0.001)
	duplicateOf := make(map[int]int)
	var distinct []int

	// The filter answers "never seen" for most locators; only its positives
	// pay for the scan over earlier keys, which also rules out false
	// positives.
	for i, locator := range locators {
		results[i].Locator = locator
		keys[i] = bloom.Normalize(locator)
		if filter.TestAndAdd(keys[i]) {
			if j := slices.Index(keys[:i], keys[i]); j >= 0 {
				results[i].Duplicate = true
				duplicateOf[i] = j
				continue
			}
		}
		distinct = append(distinct, i)
	}

	var (
		g         errgroup.Group
		mu        sync.Mutex
		completed int
	)
	g.SetLimit(concurrency)
	for _, i := range distinct {
		g.Go(func() error {
			info, err := e.Extract(ctx, locators[i])
			results[i].Info, results[i].Err = info, err

			if progress != nil {
				mu.Lock()
				completed++
				progress(completed, len(distinct), results[i])
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, j := range duplicateOf {
		results[i].Info, results[i].Err = results[j].Info, results[j].Err
	}
	return results
}
