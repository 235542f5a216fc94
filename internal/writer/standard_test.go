package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhq/originhttp/internal/wire"
)

func TestStandardHappyPath(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStandard(&buf)

	require.NoError(t, sw.WriteStatusLine(wire.HTTP11, wire.StatusOK))
	require.NoError(t, sw.WriteHeader("Content-Type", "text/plain"))
	require.NoError(t, sw.WriteHeader("Content-Length", "5"))
	require.NoError(t, sw.FinishHeaders())
	require.NoError(t, sw.WriteBody([]byte("hello")))
	require.NoError(t, sw.Complete())

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK\r\n")
	assert.Contains(t, out, "Content-Type: text/plain\r\n")
	assert.Contains(t, out, "\r\n\r\nhello")
}

func TestStandardRejectsOutOfOrderCalls(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStandard(&buf)

	err := sw.WriteHeader("X", "1")
	require.Error(t, err)
	var invalid *InvalidStateError
	assert.ErrorAs(t, err, &invalid)
}

func TestStandardCompleteRequiresContentLength(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStandard(&buf)
	require.NoError(t, sw.WriteStatusLine(wire.HTTP11, wire.StatusOK))
	require.NoError(t, sw.FinishHeaders())
	require.NoError(t, sw.WriteBody(nil))

	err := sw.Complete()
	var missing *MissingHeaderError
	assert.ErrorAs(t, err, &missing)
}

func TestStandardCompleteDetectsMismatch(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStandard(&buf)
	require.NoError(t, sw.WriteStatusLine(wire.HTTP11, wire.StatusOK))
	require.NoError(t, sw.WriteHeader("Content-Length", "10"))
	require.NoError(t, sw.FinishHeaders())
	require.NoError(t, sw.WriteBody([]byte("short")))

	err := sw.Complete()
	var mismatch *ContentLengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 10, mismatch.Declared)
	assert.Equal(t, 5, mismatch.Actual)
}

func TestStandardCompleteWithoutBodyAllowsZeroLength(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStandard(&buf)
	require.NoError(t, sw.WriteStatusLine(wire.HTTP11, wire.StatusNoContent))
	require.NoError(t, sw.WriteHeader("Content-Length", "0"))
	require.NoError(t, sw.FinishHeaders())

	require.NoError(t, sw.Complete())
}
