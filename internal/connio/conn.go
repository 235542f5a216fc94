// Package connio drives a single accepted connection: accumulate bytes
// until a full request is parseable, route it, frame and send the
// response, and loop for keep-alive — the per-connection half of
// curol-go-net/server/server.go's "go Serve(conn, s)" dispatch, rewritten
// around internal/request's byte-buffer parser instead of net/http's
// line-oriented bufio.Reader.
package connio

import (
	"bytes"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/meridianhq/originhttp/internal/compress"
	"github.com/meridianhq/originhttp/internal/idgen"
	"github.com/meridianhq/originhttp/internal/request"
	"github.com/meridianhq/originhttp/internal/response"
	"github.com/meridianhq/originhttp/internal/router"
	"github.com/meridianhq/originhttp/internal/wire"
	"github.com/meridianhq/originhttp/internal/writer"
)

const readChunkSize = 4096

// Handle reads and answers requests on conn until the client closes the
// connection, a request asks for Connection: close, or a read/parse/write
// failure makes continuing unsafe. connID identifies the connection in logs;
// counter mints one correlation id per request handled on it.
func Handle(conn net.Conn, rt *router.Router, readTimeout time.Duration, maxRequestSize int, logger *zap.Logger, counter *idgen.Counter) {
	connID := idgen.NewConnectionID()
	defer conn.Close()

	var buf []byte
	for {
		req, consumed, ok := readRequest(conn, &buf, readTimeout, maxRequestSize, logger, connID)
		if !ok {
			return
		}

		reqID := counter.Next()
		if _, err := req.NormalizedHost(); err != nil {
			logger.Warn("invalid Host header", zap.String("conn_id", connID), zap.Uint64("req_id", reqID), zap.Error(err))
		}

		resp := rt.Route(req)
		resp = maybeCompress(resp, req.HeaderOr("Accept-Encoding", ""))

		warnFraming := func(msg string) {
			logger.Warn("framing warning", zap.String("conn_id", connID), zap.Uint64("req_id", reqID), zap.String("detail", msg))
		}
		if err := writer.Send(conn, resp, warnFraming); err != nil {
			logWrite := logger.Warn
			var mismatch *writer.ContentLengthMismatchError
			var invalid *writer.InvalidStateError
			if errors.As(err, &mismatch) || errors.As(err, &invalid) {
				logWrite = logger.Error
			}
			logWrite("write failed", zap.String("conn_id", connID), zap.Uint64("req_id", reqID), zap.Error(err))
			return
		}
		logger.Info("handled request",
			zap.String("conn_id", connID),
			zap.Uint64("req_id", reqID),
			zap.String("method", string(req.Method)),
			zap.String("path", req.Path),
			zap.Int("status", int(resp.Status)),
		)

		buf = buf[consumed:]
		if req.WantsClose() {
			return
		}
	}
}

// maybeCompress applies compress.Wrap unless the handler already committed
// to a specific framing (chunked responses skip negotiated compression).
func maybeCompress(resp *response.Response, acceptEncoding string) *response.Response {
	if resp.Headers.Has("Transfer-Encoding") {
		return resp
	}
	wrapped, err := compress.Wrap(resp, acceptEncoding)
	if err != nil {
		return resp
	}
	return wrapped
}

// readRequest accumulates bytes from conn into buf until the parser can
// make progress, then parses exactly one request. It returns ok=false when
// the connection should be torn down (EOF, timeout, oversized head, or a
// malformed request that already got its error response written).
func readRequest(conn net.Conn, buf *[]byte, readTimeout time.Duration, maxRequestSize int, logger *zap.Logger, connID string) (*request.Request, int, bool) {
	chunk := make([]byte, readChunkSize)
	for !bytes.Contains(*buf, []byte("\r\n\r\n")) {
		if len(*buf) > maxRequestSize {
			writeTooLarge(conn)
			return nil, 0, false
		}
		if readTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		}
		n, err := conn.Read(chunk)
		if n > 0 {
			*buf = append(*buf, chunk[:n]...)
		}
		if err != nil {
			return nil, 0, false
		}
	}

	req, consumed, parseErr := request.Parse(*buf, conn)
	if parseErr != nil {
		accept := parseErr.Headers.GetOr("Accept", "")
		resp := response.WithNegotiation(parseErr.Version, parseErr.Status, parseErr.Reason, accept, false, true)
		warnFraming := func(msg string) {
			logger.Warn("framing warning", zap.String("conn_id", connID), zap.String("detail", msg))
		}
		if err := writer.Send(conn, resp, warnFraming); err != nil {
			logger.Warn("write failed after parse error", zap.String("conn_id", connID), zap.Error(err))
		}
		return nil, 0, false
	}
	return req, consumed, true
}

func writeTooLarge(conn net.Conn) {
	resp := response.ForFileError(wire.HTTP11, wire.StatusBadRequest, "request head too large")
	_ = writer.Send(conn, resp, nil)
}
