// Package coerce converts loosely-typed JSON values into the field types
// of vidinfo.MediaInfo. Every function reports ok=false instead of failing
// when it cannot confidently convert its input.
package coerce

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// String returns trimmed text. Empty strings are absent; numbers are
// formatted in their shortest form.
func String(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// Int returns an integer, truncating fractional numbers toward zero.
// Numeric strings are accepted.
func Int(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case float64:
		return truncate(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return truncate(f)
	}
	return 0, false
}

// Float returns a floating point number. Numeric strings are accepted.
func Float(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatScaled returns Float(v) divided by scale. A scale of zero or less
// leaves the value unchanged.
func FloatScaled(v any, scale float64) (float64, bool) {
	f, ok := Float(v)
	if !ok {
		return 0, false
	}
	if scale > 0 {
		f /= scale
	}
	return f, true
}

// Scale returns a Float coercer dividing by scale, e.g. Scale(1000) turns
// milliseconds into seconds.
func Scale(scale float64) func(any) (float64, bool) {
	return func(v any) (float64, bool) {
		return FloatScaled(v, scale)
	}
}

// Bool accepts JSON booleans and the strings "true" and "false".
func Bool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// URL returns an absolute http(s) URL. Protocol-relative URLs are promoted
// to https.
func URL(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return s, true
}

// Timestamp returns unix epoch seconds from a numeric epoch value, a unix
// numeral string, or ISO-8601 text. Text without a zone is read as UTC.
func Timestamp(v any) (int64, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if tm, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return tm.Unix(), true
		}
		if !looksLikeDate(s) {
			return 0, false
		}
		tm, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return 0, false
		}
		return tm.Unix(), true
	case bool, nil:
		return 0, false
	}
	return Int(v)
}

// Opt applies coerce to v and returns a pointer to the result, or nil.
func Opt[T any](coerce func(any) (T, bool), v any) *T {
	t, ok := coerce(v)
	if !ok {
		return nil
	}
	return &t
}

// Set removes duplicates while preserving first-seen order. Returns nil for
// an empty input.
func Set(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// looksLikeDate requires a four-digit year so free text is never handed to
// the permissive parser.
func looksLikeDate(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
			if digits == 4 {
				return true
			}
			continue
		}
		digits = 0
	}
	return false
}
