package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhq/originhttp/internal/wire"
)

func TestForFileSetsContentTypeFromExtension(t *testing.T) {
	r := ForFile(wire.HTTP11, wire.StatusOK, "notes.txt", wire.TextBody("hi"), false)
	ct, ok := r.Headers.Get("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "text/plain", ct)

	cl, _ := r.Headers.Get("Content-Length")
	assert.Equal(t, "2", cl)

	conn, _ := r.Headers.Get("Connection")
	assert.Equal(t, "keep-alive", conn)
}

func TestForFileRequestedCloseOverridesKeepAlive(t *testing.T) {
	r := ForFile(wire.HTTP11, wire.StatusOK, "notes.txt", wire.TextBody("hi"), true)
	conn, _ := r.Headers.Get("Connection")
	assert.Equal(t, "close", conn)
}

func TestForFileHTTP10DefaultsToClose(t *testing.T) {
	r := ForFile(wire.Version("HTTP/1.0"), wire.StatusOK, "notes.txt", wire.TextBody("hi"), false)
	conn, _ := r.Headers.Get("Connection")
	assert.Equal(t, "close", conn)
}

func TestForFileErrorAlwaysCloses(t *testing.T) {
	r := ForFileError(wire.HTTP11, wire.StatusNotFound, "no such file")
	conn, _ := r.Headers.Get("Connection")
	assert.Equal(t, "close", conn)
	ct, _ := r.Headers.Get("Content-Type")
	assert.Equal(t, "text/plain", ct)
}

func TestWithNegotiationPlainText(t *testing.T) {
	r := WithNegotiation(wire.HTTP11, wire.StatusNotFound, "not found", "text/plain", false, false)
	ct, _ := r.Headers.Get("Content-Type")
	assert.Equal(t, "text/plain", ct)
	assert.Equal(t, "not found", r.Body.Text)
}

func TestWithNegotiationHTML(t *testing.T) {
	r := WithNegotiation(wire.HTTP11, wire.StatusNotFound, "not found", "text/html,application/xhtml+xml", false, false)
	ct, _ := r.Headers.Get("Content-Type")
	assert.Equal(t, "text/html", ct)
	assert.Contains(t, r.Body.Text, "not found")
}

func TestWithNegotiationJSONUsesErrorKey(t *testing.T) {
	r := WithNegotiation(wire.HTTP11, wire.StatusBadRequest, "bad input", "application/json", false, false)
	ct, _ := r.Headers.Get("Content-Type")
	assert.Equal(t, "application/json", ct)
	assert.Contains(t, r.Body.Text, `"error": "bad input"`)
	assert.Contains(t, r.Body.Text, `"code": 400`)
}

func TestWithNegotiationJSONEscapesQuotes(t *testing.T) {
	r := WithNegotiation(wire.HTTP11, wire.StatusBadRequest, `say "hi"`, "application/json", false, false)
	assert.Contains(t, r.Body.Text, `\"hi\"`)
}

func TestWithNegotiationOctetStreamHasNoBody(t *testing.T) {
	r := WithNegotiation(wire.HTTP11, wire.StatusNotFound, "not found", "application/octet-stream", false, false)
	assert.Equal(t, 0, r.Body.Len())
	cl, _ := r.Headers.Get("Content-Length")
	assert.Equal(t, "0", cl)
}

func TestWithNegotiationChunkedSetsTransferEncoding(t *testing.T) {
	r := WithNegotiation(wire.HTTP11, wire.StatusOK, "streamed", "text/plain", true, false)
	te, ok := r.Headers.Get("Transfer-Encoding")
	require.True(t, ok)
	assert.Equal(t, "chunked", te)
	_, hasCL := r.Headers.Get("Content-Length")
	assert.False(t, hasCL)
}

func TestResponseSetContentLength(t *testing.T) {
	r := New(wire.HTTP11, wire.StatusOK, wire.BinaryBody([]byte{1, 2, 3, 4}))
	r.SetContentLength()
	cl, _ := r.Headers.Get("Content-Length")
	assert.Equal(t, "4", cl)
}
