package response

import (
	"fmt"
	"strings"

	"github.com/meridianhq/originhttp/internal/fileio"
	"github.com/meridianhq/originhttp/internal/wire"
)

// connectionValue chooses keep-alive vs close: a client-requested close
// always wins, otherwise HTTP/1.0 defaults to close and HTTP/1.1 to
// keep-alive.
func connectionValue(version wire.Version, requestedClose bool) string {
	if requestedClose {
		return "close"
	}
	if version == wire.HTTP11 {
		return "keep-alive"
	}
	return "close"
}

// ForFile builds the 200/206 response for a served file: Content-Type from
// extension, Content-Length from the body, no negotiation against Accept —
// file responses always derive Content-Type from the served filename.
func ForFile(version wire.Version, status wire.StatusCode, filename string, body wire.Body, requestedClose bool) *Response {
	mime := fileio.MIMEForExtension(fileio.ExtensionOf(filename))
	r := New(version, status, body)
	r.Headers.Set("Content-Type", mime)
	r.SetContentLength()
	r.Headers.Set("Connection", connectionValue(version, requestedClose))
	return r
}

// ForFileError builds a plain-text error body for a file-serving failure,
// always closing the connection.
func ForFileError(version wire.Version, status wire.StatusCode, message string) *Response {
	body := wire.TextBody(message)
	r := New(version, status, body)
	r.Headers.Set("Content-Type", "text/plain")
	r.SetContentLength()
	r.Headers.Set("Connection", "close")
	return r
}

// acceptedType drives body-shape selection from the Accept header: html,
// json, plain text, or no body at all.
type acceptedType int

const (
	acceptPlain acceptedType = iota
	acceptHTML
	acceptJSON
	acceptOctetStream
)

func acceptedTypeFromHeader(accept string) acceptedType {
	switch {
	case strings.Contains(accept, "text/html"):
		return acceptHTML
	case strings.Contains(accept, "application/json"):
		return acceptJSON
	case strings.Contains(accept, "application/octet-stream"):
		return acceptOctetStream
	default:
		return acceptPlain
	}
}

func (t acceptedType) contentType() string {
	switch t {
	case acceptHTML:
		return "text/html"
	case acceptJSON:
		return "application/json"
	case acceptOctetStream:
		return "application/octet-stream"
	default:
		return "text/plain"
	}
}

// jsonEscape escapes the handful of characters that can break out of a
// double-quoted JSON string; the error/status messages this server emits
// are short ASCII diagnostics, not untrusted structured input.
func jsonEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WithNegotiation builds a negotiated error/text body: the Accept header
// selects the body shape, chunked selects the framing, Connection follows
// connectionValue. The JSON error body uses the key "error" (see
// DESIGN.md for why that key was chosen over the alternative considered).
func WithNegotiation(version wire.Version, status wire.StatusCode, content string, acceptHeader string, chunked bool, requestedClose bool) *Response {
	accepted := acceptedTypeFromHeader(acceptHeader)

	var body *wire.Body
	switch accepted {
	case acceptHTML:
		b := wire.TextBody(fmt.Sprintf("<h1>%s</h1><p>%s</p>", status, content))
		body = &b
	case acceptJSON:
		b := wire.TextBody(fmt.Sprintf(`{"error": "%s", "code": %d}`, jsonEscape(content), int(status)))
		body = &b
	case acceptPlain:
		b := wire.TextBody(content)
		body = &b
	case acceptOctetStream:
		body = nil
	}

	var b wire.Body
	if body != nil {
		b = *body
	}
	r := New(version, status, b)
	r.Headers.Set("Content-Type", accepted.contentType())
	r.Headers.Set("Connection", connectionValue(version, requestedClose))

	if chunked {
		r.Headers.Set("Transfer-Encoding", "chunked")
	} else {
		length := 0
		if body != nil {
			length = body.Len()
		}
		r.Headers.Set("Content-Length", fmt.Sprintf("%d", length))
	}

	return r
}
