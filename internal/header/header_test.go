package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitlecase(t *testing.T) {
	assert.Equal(t, "Content-Length", Titlecase("content-length"))
	assert.Equal(t, "Content-Type", Titlecase("CONTENT-TYPE"))
	assert.Equal(t, "Etag", Titlecase("etag"))
}

func TestMapSetGetCaseInsensitive(t *testing.T) {
	h := New()
	h.Set("Content-Type", "text/plain")

	v, ok := h.Get("content-type")
	require.True(t, ok)
	assert.Equal(t, "text/plain", v)

	assert.True(t, h.Has("CONTENT-TYPE"))
	assert.Equal(t, "text/plain", h.GetOr("content-type", "fallback"))
	assert.Equal(t, "fallback", h.GetOr("missing", "fallback"))
}

func TestMapSetReplacesDuplicate(t *testing.T) {
	h := New()
	h.Set("X-Thing", "one")
	h.Set("x-thing", "two")

	assert.Equal(t, 1, h.Len())
	v, _ := h.Get("X-Thing")
	assert.Equal(t, "two", v)
}

func TestMapDelAndClone(t *testing.T) {
	h := New()
	h.Set("A", "1")
	h.Set("B", "2")

	clone := h.Clone()
	h.Del("A")

	assert.False(t, h.Has("A"))
	assert.True(t, clone.Has("A"), "clone must not observe later mutation")
}

func TestMapEachUsesWireCasing(t *testing.T) {
	h := New()
	h.Set("content-length", "5")

	seen := map[string]string{}
	h.Each(func(name, value string) { seen[name] = value })
	assert.Equal(t, "5", seen["Content-Length"])
}
