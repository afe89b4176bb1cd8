// Package bloom provides locator deduplication using Bloom filters.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter for locator deduplication. It is not safe for
// concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected locators
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd reports whether the locator might already be in the filter
// and adds it. False positives are possible; false negatives are not.
func (f *Filter) TestAndAdd(locator string) bool {
	return f.f.TestAndAddString(Normalize(locator))
}

// Normalize returns the form locators are compared in: surrounding space
// trimmed, scheme and host lowercased, fragment dropped. Unparsable input
// is only trimmed.
func Normalize(locator string) string {
	locator = strings.TrimSpace(locator)
	u, err := url.Parse(locator)
	if err != nil || u.Host == "" {
		return locator
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
