package request

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

var crlfcrlf = []byte("\r\n\r\n")

// Parse works against a contiguous byte slice that already contains at
// least the header/body boundary (or the whole connection has closed).
// buf may contain body bytes beyond the boundary; bodyReader supplies any
// additional body bytes the accumulator has not yet read off the wire —
// the read loops until exactly Content-Length bytes have been received or
// an I/O error occurs.
//
// Consumed reports how many leading bytes of buf belong to this request
// (request line, headers, blank line, and however much of the body buf
// already held). The caller slides its accumulation buffer by Consumed
// before reading the next request on a keep-alive connection.
func Parse(buf []byte, bodyReader io.Reader) (req *Request, consumed int, parseErr *ParseError) {
	boundary := bytes.Index(buf, crlfcrlf)
	if boundary < 0 {
		return nil, 0, newParseError(wire.StatusBadRequest, wire.HTTP11, nil, "missing header/body boundary")
	}
	headerRegion := buf[:boundary]
	afterBoundary := buf[boundary+len(crlfcrlf):]

	lines := strings.Split(string(headerRegion), "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, 0, newParseError(wire.StatusBadRequest, wire.HTTP11, nil, "empty request line")
	}

	requestLine := lines[0]
	tokens := strings.Fields(requestLine)
	if len(tokens) != 3 {
		return nil, 0, newParseError(wire.StatusBadRequest, wire.HTTP11, nil, "request line must have exactly three tokens")
	}

	method, ok := wire.ParseMethod(tokens[0])
	if !ok {
		// Method is unsupported, not malformed: best-guess version still
		// comes from the request line when parseable.
		version, _ := wire.ParseVersion(tokens[2])
		return nil, 0, newParseError(wire.StatusMethodNotAllowed, version, nil, "unsupported method "+tokens[0])
	}

	path := tokens[1]

	version, ok := wire.ParseVersion(tokens[2])
	if !ok {
		return nil, 0, newParseError(wire.StatusBadRequest, wire.HTTP11, nil, "unsupported version "+tokens[2])
	}

	headers := header.New()
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, 0, newParseError(wire.StatusBadRequest, version, headers, "header line missing colon")
		}
		name := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		headers.Set(name, value)
	}

	req := &Request{Method: method, Path: path, Version: version, Headers: headers}

	contentLength := 0
	if cl, ok := headers.Get("Content-Length"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(cl))
		if err != nil || n < 0 {
			return nil, 0, newParseError(wire.StatusBadRequest, version, headers, "invalid Content-Length")
		}
		contentLength = n
	}

	headEnd := boundary + len(crlfcrlf)
	if contentLength == 0 {
		return req, headEnd, nil
	}

	body := make([]byte, contentLength)
	n := copy(body, afterBoundary)
	if n < contentLength {
		read, err := io.ReadFull(bodyReader, body[n:])
		n += read
		if err != nil {
			return nil, 0, newParseError(wire.StatusBadRequest, version, headers,
				fmt.Sprintf("short body: declared %d, got %d", contentLength, n))
		}
	}
	req.Body = body

	// consumed covers only bytes that came from buf; bytes read fresh from
	// bodyReader beyond len(afterBoundary) were never in buf to begin with.
	consumedBody := n
	if consumedBody > len(afterBoundary) {
		consumedBody = len(afterBoundary)
	}
	return req, headEnd + consumedBody, nil
}
