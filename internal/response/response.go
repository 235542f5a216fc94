// Package response implements the writable response value: a status
// line, a header mapping, and a body variant, assembled by a handler and
// consumed once by a writer.
//
// The struct shape follows curol-go-net/message/writer.go's Response
// (status line fields + header + body), adapted from a connection-bound
// writer into a plain, serializable value a handler can build before any
// framing decision is made.
package response

import (
	"strconv"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

// Response is the "Writable" capability: anything exposing a status line,
// a header mapping, and a body.
type Response struct {
	Version wire.Version
	Status  wire.StatusCode
	Headers *header.Map
	Body    wire.Body
}

// New builds a bare response with empty headers.
func New(version wire.Version, status wire.StatusCode, body wire.Body) *Response {
	return &Response{Version: version, Status: status, Headers: header.New(), Body: body}
}

// SetContentLength stamps Content-Length from the current body length.
func (r *Response) SetContentLength() {
	r.Headers.Set("Content-Length", strconv.Itoa(r.Body.Len()))
}

// StatusLine, HeaderMap, and BodyValue satisfy the small Writable
// capability set: status line, headers, body.
func (r *Response) StatusLine() (wire.Version, wire.StatusCode) { return r.Version, r.Status }
func (r *Response) HeaderMap() *header.Map                      { return r.Headers }
func (r *Response) BodyValue() wire.Body                        { return r.Body }
