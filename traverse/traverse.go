// Package traverse provides fault-tolerant lookups over decoded JSON values.
//
// Values are the closed set produced by encoding/json: map[string]any,
// []any, string, json.Number, float64, bool and nil. A path that cannot be
// followed resolves to absent (nil); traversal never panics and never
// returns an error.
package traverse

import (
	"fmt"
	"sort"
)

// Segment is one step of a Path: a Key, an Index or All.
type Segment interface {
	segment()
}

// Key selects a member of a JSON object.
type Key string

// Index selects an element of a JSON array. Negative indexes count from
// the end.
type Index int

type wildcard struct{}

// All selects every element of an array (or every value of an object, in
// key order) and applies the rest of the path to each.
var All Segment = wildcard{}

func (Key) segment()      {}
func (Index) segment()    {}
func (wildcard) segment() {}

// Path is an ordered sequence of segments.
type Path []Segment

// P builds a Path from strings (keys), ints (indexes) and All.
// It panics on any other segment type.
func P(segments ...any) Path {
	p := make(Path, 0, len(segments))
	for _, s := range segments {
		switch v := s.(type) {
		case Segment:
			p = append(p, v)
		case string:
			p = append(p, Key(v))
		case int:
			p = append(p, Index(v))
		default:
			panic(fmt.Sprintf("traverse: unsupported path segment %T", s))
		}
	}
	return p
}

// Get returns the value at the first path that resolves, or nil.
// A path ending in an All segment resolves to a []any holding the
// flattened, non-absent results; an empty result counts as absent.
func Get(root any, paths ...Path) any {
	for _, p := range paths {
		if v, ok := walk(root, p); ok {
			return v
		}
	}
	return nil
}

// Value resolves paths in order and returns the first result that coerce
// accepts. Coercion failure is treated like a missing value.
func Value[T any](root any, coerce func(any) (T, bool), paths ...Path) (T, bool) {
	for _, p := range paths {
		v, ok := walk(root, p)
		if !ok {
			continue
		}
		if t, ok := coerce(v); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Ptr is like Value but returns nil when nothing resolves.
func Ptr[T any](root any, coerce func(any) (T, bool), paths ...Path) *T {
	t, ok := Value(root, coerce, paths...)
	if !ok {
		return nil
	}
	return &t
}

// Values resolves paths in order and coerces every element of the first
// result that yields at least one accepted element. Elements rejected by
// coerce are dropped. A non-list result is treated as a single element.
func Values[T any](root any, coerce func(any) (T, bool), paths ...Path) []T {
	for _, p := range paths {
		v, ok := walk(root, p)
		if !ok {
			continue
		}
		items, isList := v.([]any)
		if !isList {
			items = []any{v}
		}
		var out []T
		for _, item := range items {
			if t, ok := coerce(item); ok {
				out = append(out, t)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func walk(v any, path Path) (any, bool) {
	for i, seg := range path {
		if v == nil {
			return nil, false
		}
		switch s := seg.(type) {
		case Key:
			m, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			v = m[string(s)]
		case Index:
			l, ok := v.([]any)
			if !ok {
				return nil, false
			}
			idx := int(s)
			if idx < 0 {
				idx += len(l)
			}
			if idx < 0 || idx >= len(l) {
				return nil, false
			}
			v = l[idx]
		case wildcard:
			return expand(v, path[i+1:])
		default:
			return nil, false
		}
	}
	return v, v != nil
}

func expand(v any, rest Path) (any, bool) {
	var elems []any
	switch c := v.(type) {
	case []any:
		elems = c
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elems = make([]any, 0, len(keys))
		for _, k := range keys {
			elems = append(elems, c[k])
		}
	default:
		return nil, false
	}

	nested := hasWildcard(rest)
	out := make([]any, 0, len(elems))
	for _, e := range elems {
		r, ok := walk(e, rest)
		if !ok {
			continue
		}
		if nested {
			if l, isList := r.([]any); isList {
				out = append(out, l...)
				continue
			}
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func hasWildcard(p Path) bool {
	for _, s := range p {
		if _, ok := s.(wildcard); ok {
			return true
		}
	}
	return false
}
