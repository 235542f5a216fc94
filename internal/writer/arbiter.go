package writer

import (
	"io"
	"strconv"
	"strings"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

// Decision is the framing arbiter's output.
type Decision struct {
	UseChunked bool
	Warning    string
}

func containsTokenCI(value, token string) bool {
	for _, part := range strings.Split(value, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}

// Decide picks the framing: HTTP/1.0 is always Content-Length (with a
// warning if chunked TE was requested); HTTP/1.1 uses chunked iff
// Transfer-Encoding contains a "chunked" token, warning if Content-Length
// was also present.
func Decide(version wire.Version, headers *header.Map) Decision {
	te, hasTE := headers.Get("Transfer-Encoding")
	teHasChunked := hasTE && containsTokenCI(te, "chunked")
	_, hasCL := headers.Get("Content-Length")

	if version == wire.HTTP10 {
		if teHasChunked {
			return Decision{UseChunked: false, Warning: "HTTP/1.0: ignoring Transfer-Encoding: chunked; using Content-Length"}
		}
		return Decision{UseChunked: false}
	}

	if teHasChunked {
		if hasCL {
			return Decision{UseChunked: true, Warning: "Transfer-Encoding: chunked present, dropping Content-Length"}
		}
		return Decision{UseChunked: true}
	}
	return Decision{UseChunked: false}
}

// Send runs the framing arbiter against w's headers and drives either a
// Standard or a Chunked writer to completion. warn, if non-nil, receives
// the arbiter's warning text (e.g. HTTP/1.0 dropping a requested chunked
// encoding); callers that don't care about framing diagnostics may pass nil.
func Send(stream io.Writer, w Writable, warn func(string)) error {
	version, status := w.StatusLine()
	headers := w.HeaderMap()
	decision := Decide(version, headers)
	if decision.Warning != "" && warn != nil {
		warn(decision.Warning)
	}

	if decision.UseChunked {
		return sendChunked(stream, version, status, headers, w.BodyValue())
	}
	return sendStandard(stream, version, status, headers, w.BodyValue())
}

func sendChunked(stream io.Writer, version wire.Version, status wire.StatusCode, headers *header.Map, body wire.Body) error {
	effective := header.New()
	var transferTokens []string
	headers.Each(func(name, value string) {
		switch {
		case strings.EqualFold(name, "Content-Length"):
			// dropped: chunked framing is exclusive with Content-Length
		case strings.EqualFold(name, "Transfer-Encoding"):
			for _, tok := range strings.Split(value, ",") {
				tok = strings.TrimSpace(tok)
				if tok != "" && !strings.EqualFold(tok, "chunked") {
					transferTokens = append(transferTokens, tok)
				}
			}
		default:
			effective.Set(name, value)
		}
	})
	transferTokens = append(transferTokens, "chunked")
	effective.Set("Transfer-Encoding", strings.Join(transferTokens, ", "))

	cw := NewChunked(stream)
	if err := cw.WriteStatusLine(version, status); err != nil {
		return err
	}
	var writeErr error
	effective.Each(func(name, value string) {
		if writeErr != nil {
			return
		}
		writeErr = cw.WriteHeader(name, value)
	})
	if writeErr != nil {
		return writeErr
	}
	if err := cw.FinishHeaders(); err != nil {
		return err
	}
	if err := cw.WriteBody(body.Bytes()); err != nil {
		return err
	}
	return cw.Complete()
}

func sendStandard(stream io.Writer, version wire.Version, status wire.StatusCode, headers *header.Map, body wire.Body) error {
	sw := NewStandard(stream)
	if err := sw.WriteStatusLine(version, status); err != nil {
		return err
	}
	var writeErr error
	headers.Each(func(name, value string) {
		if writeErr != nil {
			return
		}
		if strings.EqualFold(name, "Transfer-Encoding") {
			return
		}
		writeErr = sw.WriteHeader(name, value)
	})
	if writeErr != nil {
		return writeErr
	}
	if headers.Has("Transfer-Encoding") && !headers.Has("Content-Length") {
		// the dropped Transfer-Encoding is replaced by a Content-Length for the body held
		if err := sw.WriteHeader("Content-Length", strconv.Itoa(body.Len())); err != nil {
			return err
		}
	}
	if err := sw.FinishHeaders(); err != nil {
		return err
	}
	if err := sw.WriteBody(body.Bytes()); err != nil {
		return err
	}
	return sw.Complete()
}
