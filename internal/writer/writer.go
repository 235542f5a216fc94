// Package writer implements the response write state machine: a
// seven-state typestate enforcing status → headers → body → complete, a
// chunked variant, and the framing arbiter that picks between them.
//
// The state transitions and the ContentLengthMismatch/InvalidState error
// shapes follow the reference server's writer types; the Go shape of the
// capability (a minimal ResponseWriter-like interface) follows
// curol-go-net/message/server/writer.go.
package writer

import (
	"fmt"

	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

// State is the seven-state machine a Standard or Chunked writer walks
// through between construction and Complete.
type State int

const (
	Initial State = iota
	StatusWritten
	HeadersOpen
	HeadersClosed
	BodyWritten
	Complete
	Failed
)

// Writable is the capability set Send needs: anything exposing a
// status line, a header mapping, and a body can be handed to it.
type Writable interface {
	StatusLine() (wire.Version, wire.StatusCode)
	HeaderMap() *header.Map
	BodyValue() wire.Body
}

// InvalidStateError reports a call made out of order: "a programmer bug,
// not a runtime condition"
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("writer: invalid call to %s in state %d", e.Op, e.State)
}

// ContentLengthMismatchError is a loud, fatal error: the declared
// Content-Length does not equal the body actually held.
type ContentLengthMismatchError struct {
	Declared int
	Actual   int
}

func (e *ContentLengthMismatchError) Error() string {
	return fmt.Sprintf("content-length mismatch: declared %d, actual %d", e.Declared, e.Actual)
}

// MissingHeaderError reports a required header absent at complete time.
type MissingHeaderError struct {
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("missing required header: %s", e.Header)
}
