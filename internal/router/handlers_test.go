package router

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/request"
	"github.com/meridianhq/originhttp/internal/sandbox"
	"github.com/meridianhq/originhttp/internal/wire"
)

func newHandlers(t *testing.T) (*Handlers, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "greeting.txt"), []byte("hello sandbox"), 0o644))

	box, err := sandbox.New(root)
	require.NoError(t, err)
	return &Handlers{Box: box}, root
}

func reqWithHeaders(method wire.Method, path string, hdrs map[string]string) *request.Request {
	h := header.New()
	for k, v := range hdrs {
		h.Set(k, v)
	}
	return &request.Request{Method: method, Path: path, Version: wire.HTTP11, Headers: h}
}

func TestPingHandler(t *testing.T) {
	handlers, _ := newHandlers(t)
	resp := handlers.Ping(reqWithHeaders(wire.GET, "/ping", nil), nil)
	assert.Equal(t, wire.StatusOK, resp.Status)
	assert.Equal(t, "pong", resp.Body.Text)
}

func TestEchoHandler(t *testing.T) {
	handlers, _ := newHandlers(t)
	resp := handlers.Echo(reqWithHeaders(wire.GET, "/echo/abc", nil), Params{"text": "abc"})
	assert.Equal(t, "abc", resp.Body.Text)
}

func TestUserAgentHandler(t *testing.T) {
	handlers, _ := newHandlers(t)
	req := reqWithHeaders(wire.GET, "/user-agent", map[string]string{"User-Agent": "curl/8"})
	resp := handlers.UserAgent(req, nil)
	assert.Equal(t, "curl/8", resp.Body.Text)
}

func TestChunkedHandlerForcesTransferEncoding(t *testing.T) {
	handlers, _ := newHandlers(t)
	resp := handlers.Chunked(reqWithHeaders(wire.GET, "/chunked/xyz", nil), Params{"text": "xyz"})
	te, ok := resp.Headers.Get("Transfer-Encoding")
	require.True(t, ok)
	assert.Equal(t, "chunked", te)
	_, hasCL := resp.Headers.Get("Content-Length")
	assert.False(t, hasCL)
}

func TestGetFileFullRead(t *testing.T) {
	handlers, _ := newHandlers(t)
	resp := handlers.GetFile(reqWithHeaders(wire.GET, "/files/greeting.txt", nil), Params{"filename": "greeting.txt"})
	require.Equal(t, wire.StatusOK, resp.Status)
	assert.Equal(t, "hello sandbox", resp.Body.Text)
}

func TestGetFileRangeRead(t *testing.T) {
	handlers, _ := newHandlers(t)
	req := reqWithHeaders(wire.GET, "/files/greeting.txt", map[string]string{"Range": "bytes=0-4"})
	resp := handlers.GetFile(req, Params{"filename": "greeting.txt"})
	require.Equal(t, wire.StatusPartialContent, resp.Status)
	assert.Equal(t, []byte("hello"), resp.Body.Bytes())

	cr, ok := resp.Headers.Get("Content-Range")
	require.True(t, ok)
	assert.Equal(t, "bytes 0-4/13", cr)
}

func TestGetFileMissingReturnsNotFound(t *testing.T) {
	handlers, _ := newHandlers(t)
	resp := handlers.GetFile(reqWithHeaders(wire.GET, "/files/ghost.txt", nil), Params{"filename": "ghost.txt"})
	assert.Equal(t, wire.StatusNotFound, resp.Status)
}

func TestGetFileTraversalRejected(t *testing.T) {
	handlers, _ := newHandlers(t)
	resp := handlers.GetFile(reqWithHeaders(wire.GET, "/files/..%2f..%2fetc%2fpasswd", nil), Params{"filename": "../../etc/passwd"})
	assert.Equal(t, wire.StatusForbidden, resp.Status)
}

func TestPostFileCreatesNew(t *testing.T) {
	handlers, root := newHandlers(t)
	req := reqWithHeaders(wire.POST, "/files/new.txt", nil)
	req.Body = []byte("created")
	resp := handlers.PostFile(req, Params{"filename": "new.txt"})
	require.Equal(t, wire.StatusCreated, resp.Status)

	data, err := os.ReadFile(filepath.Join(root, "new.txt"))
	require.NoError(t, err)
	assert.Equal(t, "created", string(data))
}

func TestPostFileOverwritesExisting(t *testing.T) {
	handlers, _ := newHandlers(t)
	req := reqWithHeaders(wire.POST, "/files/greeting.txt", nil)
	req.Body = []byte("overwritten")
	resp := handlers.PostFile(req, Params{"filename": "greeting.txt"})
	assert.Equal(t, wire.StatusOK, resp.Status)
}

func TestDeleteFileRemovesExisting(t *testing.T) {
	handlers, root := newHandlers(t)
	resp := handlers.DeleteFile(reqWithHeaders(wire.DELETE, "/files/greeting.txt", nil), Params{"filename": "greeting.txt"})
	assert.Equal(t, wire.StatusNoContent, resp.Status)

	_, err := os.Stat(filepath.Join(root, "greeting.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteFileMissingReturnsNotFound(t *testing.T) {
	handlers, _ := newHandlers(t)
	resp := handlers.DeleteFile(reqWithHeaders(wire.DELETE, "/files/ghost.txt", nil), Params{"filename": "ghost.txt"})
	assert.Equal(t, wire.StatusNotFound, resp.Status)
}

func TestNotFoundHandlerNegotiatesBody(t *testing.T) {
	handlers, _ := newHandlers(t)
	req := reqWithHeaders(wire.GET, "/bogus", map[string]string{"Accept": "application/json"})
	resp := handlers.NotFound(req, nil)
	assert.Equal(t, wire.StatusNotFound, resp.Status)
	assert.Contains(t, resp.Body.Text, `"error"`)
}
