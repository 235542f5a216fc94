package writer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

// Standard is the Content-Length-framed response writer: the same
// seven-state typestate machine, enforcing a declared Content-Length that
// matches the body actually written.
type Standard struct {
	w          *bufio.Writer
	state      State
	statusLine string
	headers    *header.Map
	body       []byte
	bodySet    bool
}

// NewStandard wraps a stream in a fresh Standard writer.
func NewStandard(w io.Writer) *Standard {
	return &Standard{w: bufio.NewWriter(w), state: Initial, headers: header.New()}
}

func (s *Standard) WriteStatusLine(version wire.Version, status wire.StatusCode) error {
	if s.state != Initial {
		s.state = Failed
		return &InvalidStateError{Op: "write_status_line", State: s.state}
	}
	s.statusLine = version.String() + " " + status.String() + "\r\n"
	s.state = StatusWritten
	return nil
}

func (s *Standard) WriteHeader(name, value string) error {
	if s.state != StatusWritten && s.state != HeadersOpen {
		s.state = Failed
		return &InvalidStateError{Op: "write_header", State: s.state}
	}
	s.headers.Set(name, value)
	s.state = HeadersOpen
	return nil
}

func (s *Standard) FinishHeaders() error {
	if s.state != StatusWritten && s.state != HeadersOpen {
		s.state = Failed
		return &InvalidStateError{Op: "finish_headers", State: s.state}
	}
	s.state = HeadersClosed
	return nil
}

func (s *Standard) WriteBody(body []byte) error {
	if s.state != HeadersClosed {
		s.state = Failed
		return &InvalidStateError{Op: "write_body", State: s.state}
	}
	s.body = body
	s.bodySet = true
	s.state = BodyWritten
	return nil
}

// Complete enforces the writer's contract: status line present,
// Content-Length present and numeric, and equal to the body actually held.
func (s *Standard) Complete() error {
	if s.state != BodyWritten && s.state != HeadersClosed {
		return &InvalidStateError{Op: "complete", State: s.state}
	}
	if s.statusLine == "" {
		return &InvalidStateError{Op: "complete (no status line)", State: s.state}
	}

	declaredStr, ok := s.headers.Get("Content-Length")
	if !ok {
		return &MissingHeaderError{Header: "Content-Length"}
	}
	declared, err := strconv.Atoi(strings.TrimSpace(declaredStr))
	if err != nil || declared < 0 {
		return &InvalidStateError{Op: "complete (bad Content-Length)", State: s.state}
	}

	actual := 0
	if s.bodySet {
		actual = len(s.body)
	}
	if declared != actual {
		return &ContentLengthMismatchError{Declared: declared, Actual: actual}
	}

	if _, err := s.w.WriteString(s.statusLine); err != nil {
		return err
	}
	var headerErr error
	s.headers.Each(func(name, value string) {
		if headerErr != nil {
			return
		}
		_, headerErr = s.w.WriteString(name + ": " + value + "\r\n")
	})
	if headerErr != nil {
		return headerErr
	}
	if _, err := s.w.WriteString("\r\n"); err != nil {
		return err
	}
	if s.bodySet {
		if _, err := s.w.Write(s.body); err != nil {
			return err
		}
	}

	s.state = Complete
	return s.w.Flush()
}
