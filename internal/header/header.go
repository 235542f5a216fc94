// Package header implements the case-insensitive header mapping used by
// both requests and responses; header names are stored title-cased.
package header

import "strings"

// Map stores header values keyed by the lowercased name, each with its
// title-cased wire name, the way
// curol-go-net/modules/hashmap.HashMap stores generic key-value pairs over
// a plain map — adapted here with case-insensitive semantics on Set/Get/Del.
type Map struct {
	m map[string]entry
}

type entry struct {
	name  string // title-cased, as it will appear on the wire
	value string
}

// New returns an empty header Map.
func New() *Map {
	return &Map{m: make(map[string]entry)}
}

// NewFromPairs builds a Map from a slice of (name, value) pairs; a later
// pair replaces an earlier one with the same name. The insertion order is
// not kept: Each visits headers in no defined order.
func NewFromPairs(pairs [][2]string) *Map {
	h := New()
	for _, p := range pairs {
		h.Set(p[0], p[1])
	}
	return h
}

func normalize(key string) string {
	return strings.ToLower(key)
}

// Titlecase renders "content-length" as "Content-Length", the conventional
// wire casing for header names.
func Titlecase(key string) string {
	parts := strings.Split(key, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		lower := strings.ToLower(p)
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, "-")
}

// Set inserts or replaces a header, case-insensitively on the key. The
// title-cased form of key is what gets written to the wire.
func (h *Map) Set(key, value string) {
	h.m[normalize(key)] = entry{name: Titlecase(key), value: value}
}

// Get looks up a header value, case-insensitively. ok is false if absent.
func (h *Map) Get(key string) (string, bool) {
	e, ok := h.m[normalize(key)]
	if !ok {
		return "", false
	}
	return e.value, true
}

// GetOr is Get with a default.
func (h *Map) GetOr(key, def string) string {
	if v, ok := h.Get(key); ok {
		return v
	}
	return def
}

// Has reports whether key is present, case-insensitively.
func (h *Map) Has(key string) bool {
	_, ok := h.m[normalize(key)]
	return ok
}

// Del removes a header, case-insensitively.
func (h *Map) Del(key string) {
	delete(h.m, normalize(key))
}

// Len returns the number of distinct headers.
func (h *Map) Len() int { return len(h.m) }

// Each calls fn once per header, with the title-cased name.
func (h *Map) Each(fn func(name, value string)) {
	for _, e := range h.m {
		fn(e.name, e.value)
	}
}

// Clone returns a deep copy.
func (h *Map) Clone() *Map {
	h2 := New()
	for k, e := range h.m {
		h2.m[k] = e
	}
	return h2
}
