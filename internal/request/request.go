// Package request implements byte-accurate HTTP/1.1 request parsing: a
// status line, a case-insensitive header mapping, and an optional body
// whose length is exactly Content-Length.
//
// This follows curol-go-net/http/request.go's ReadRequest/readRequest,
// which operates directly on a buffered byte stream, rather than the
// older, line-oriented message/parse.go's bufio.ReadString('\n') loop.
package request

import (
	"strings"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

// Request is the parsed, read-only value the router and one handler
// consume. It is dropped once the response has been sent.
type Request struct {
	Method  wire.Method
	Path    string
	Version wire.Version
	Headers *header.Map
	Body    []byte // nil iff Content-Length absent or zero
}

// HeaderOr returns a header value case-insensitively, or def if absent.
func (r *Request) HeaderOr(name, def string) string {
	return r.Headers.GetOr(name, def)
}

// WantsClose reports whether the client asked for the connection to close
// after this response.
func (r *Request) WantsClose() bool {
	v, ok := r.Headers.Get("Connection")
	if !ok {
		return false
	}
	return strings.EqualFold(v, "close")
}
