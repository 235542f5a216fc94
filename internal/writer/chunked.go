package writer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

// Chunked is the chunked-transfer-encoding writer: the same seven-state
// machine as Standard, but it requires Transfer-Encoding: chunked at
// complete time, forbids Content-Length, and frames the body as a single
// hex-length-prefixed chunk followed by the zero-length terminator.
type Chunked struct {
	w          *bufio.Writer
	state      State
	statusLine string
	headers    *header.Map
	body       []byte
	bodySet    bool
}

// NewChunked wraps a stream in a fresh Chunked writer.
func NewChunked(w io.Writer) *Chunked {
	return &Chunked{w: bufio.NewWriter(w), state: Initial, headers: header.New()}
}

func (c *Chunked) WriteStatusLine(version wire.Version, status wire.StatusCode) error {
	if c.state != Initial {
		c.state = Failed
		return &InvalidStateError{Op: "write_status_line", State: c.state}
	}
	c.statusLine = version.String() + " " + status.String() + "\r\n"
	c.state = StatusWritten
	return nil
}

func (c *Chunked) WriteHeader(name, value string) error {
	if c.state != StatusWritten && c.state != HeadersOpen {
		c.state = Failed
		return &InvalidStateError{Op: "write_header", State: c.state}
	}
	c.headers.Set(name, value)
	c.state = HeadersOpen
	return nil
}

func (c *Chunked) FinishHeaders() error {
	if c.state != StatusWritten && c.state != HeadersOpen {
		c.state = Failed
		return &InvalidStateError{Op: "finish_headers", State: c.state}
	}
	c.state = HeadersClosed
	return nil
}

func (c *Chunked) WriteBody(body []byte) error {
	if c.state != HeadersClosed {
		c.state = Failed
		return &InvalidStateError{Op: "write_body", State: c.state}
	}
	if len(body) > 0 {
		c.body = body
		c.bodySet = true
	}
	c.state = BodyWritten
	return nil
}

// Complete enforces the contract and emits status line, headers,
// a single chunk (if any body was written), and the "0\r\n\r\n" terminator.
func (c *Chunked) Complete() error {
	if c.state != BodyWritten && c.state != HeadersClosed {
		return &InvalidStateError{Op: "complete", State: c.state}
	}
	if c.statusLine == "" {
		return &InvalidStateError{Op: "complete (no status line)", State: c.state}
	}
	te, ok := c.headers.Get("Transfer-Encoding")
	if !ok || !containsTokenCI(te, "chunked") {
		return &MissingHeaderError{Header: "Transfer-Encoding: chunked"}
	}
	if c.headers.Has("Content-Length") {
		return &InvalidStateError{Op: "complete (Content-Length set on chunked response)", State: c.state}
	}

	if _, err := c.w.WriteString(c.statusLine); err != nil {
		return err
	}
	var headerErr error
	c.headers.Each(func(name, value string) {
		if headerErr != nil {
			return
		}
		_, headerErr = c.w.WriteString(name + ": " + value + "\r\n")
	})
	if headerErr != nil {
		return headerErr
	}
	if _, err := c.w.WriteString("\r\n"); err != nil {
		return err
	}

	if c.bodySet {
		if err := writeChunk(c.w, c.body); err != nil {
			return err
		}
	}
	if _, err := c.w.WriteString("0\r\n\r\n"); err != nil {
		return err
	}

	c.state = Complete
	return c.w.Flush()
}

func writeChunk(w *bufio.Writer, data []byte) error {
	if _, err := w.WriteString(fmt.Sprintf("%x\r\n", len(data))); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := w.WriteString("\r\n")
	return err
}
