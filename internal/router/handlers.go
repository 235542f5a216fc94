package router

import (
	"os"
	"strconv"

	"github.com/meridianhq/originhttp/internal/fileio"
	"github.com/meridianhq/originhttp/internal/request"
	"github.com/meridianhq/originhttp/internal/response"
	"github.com/meridianhq/originhttp/internal/sandbox"
	"github.com/meridianhq/originhttp/internal/wire"
)

// Handlers bundles the sandbox and any other collaborators the built-in
// routes need, the way message/server/router.go's Router closes over a
// Handlers map of its own.
type Handlers struct {
	Box *sandbox.Sandbox
}

// NotFound answers the "No route match ⇒ 404" with a negotiated
// body.
func (h *Handlers) NotFound(req *request.Request, _ Params) *response.Response {
	return response.WithNegotiation(req.Version, wire.StatusNotFound, "Route not found", req.HeaderOr("Accept", ""), false, req.WantsClose())
}

// Root answers "GET /" with a negotiated welcome string.
func (h *Handlers) Root(req *request.Request, _ Params) *response.Response {
	return response.WithNegotiation(req.Version, wire.StatusOK, "Welcome to originhttp", req.HeaderOr("Accept", ""), false, req.WantsClose())
}

// Echo answers "GET /echo/{text}" by echoing the capture as plain text.
func (h *Handlers) Echo(req *request.Request, params Params) *response.Response {
	r := response.New(req.Version, wire.StatusOK, wire.TextBody(params["text"]))
	r.Headers.Set("Content-Type", "text/plain")
	r.SetContentLength()
	r.Headers.Set("Connection", connValue(req))
	return r
}

// UserAgent answers "GET /user-agent" by echoing the User-Agent header.
func (h *Handlers) UserAgent(req *request.Request, _ Params) *response.Response {
	ua := req.HeaderOr("User-Agent", "")
	r := response.New(req.Version, wire.StatusOK, wire.TextBody(ua))
	r.Headers.Set("Content-Type", "text/plain")
	r.SetContentLength()
	r.Headers.Set("Connection", connValue(req))
	return r
}

// Ping answers "GET /ping" with a liveness body.
func (h *Handlers) Ping(req *request.Request, _ Params) *response.Response {
	r := response.New(req.Version, wire.StatusOK, wire.TextBody("pong"))
	r.Headers.Set("Content-Type", "text/plain")
	r.SetContentLength()
	r.Headers.Set("Connection", connValue(req))
	return r
}

// Chunked answers "GET /chunked/{text}" and forces chunked framing by
// setting Transfer-Encoding: chunked directly
func (h *Handlers) Chunked(req *request.Request, params Params) *response.Response {
	r := response.New(req.Version, wire.StatusOK, wire.TextBody(params["text"]))
	r.Headers.Set("Content-Type", "text/plain")
	r.Headers.Set("Transfer-Encoding", "chunked")
	r.Headers.Set("Connection", connValue(req))
	return r
}

func connValue(req *request.Request) string {
	if req.WantsClose() {
		return "close"
	}
	if req.Version == wire.HTTP11 {
		return "keep-alive"
	}
	return "close"
}

// GetFile answers "GET /files/{filename}": full read (200) or, with a
// Range header, a partial read (206).
func (h *Handlers) GetFile(req *request.Request, params Params) *response.Response {
	resolved, sbErr := h.Box.Resolve(params["filename"], sandbox.Read)
	if sbErr != nil {
		return fileErrorResponse(req, sbErr)
	}

	rangeHeader, hasRange := req.Headers.Get("Range")
	if !hasRange {
		result, err := fileio.ReadFull(resolved.Path)
		if err != nil {
			return response.ForFileError(req.Version, wire.StatusInternalServerError, "failed to read file")
		}
		return response.ForFile(req.Version, wire.StatusOK, params["filename"], result.Body, req.WantsClose())
	}

	rng, err := wire.ParseByteRange(rangeHeader)
	if err != nil {
		return response.ForFileError(req.Version, wire.StatusBadRequest, "invalid range")
	}
	result, err := fileio.ReadRange(resolved.Path, rng)
	if err != nil {
		if err == fileio.ErrInvalidRange {
			return response.ForFileError(req.Version, wire.StatusBadRequest, "invalid range")
		}
		return response.ForFileError(req.Version, wire.StatusInternalServerError, "failed to read file")
	}

	r := response.ForFile(req.Version, wire.StatusPartialContent, params["filename"], result.Body, req.WantsClose())
	r.Headers.Set("Content-Range", contentRange(*result.Range, result.TotalSize))
	return r
}

func contentRange(rng wire.ByteRange, total uint64) string {
	end := uint64(0)
	if rng.End != nil {
		end = *rng.End
	}
	return "bytes " + strconv.FormatUint(rng.Start, 10) + "-" + strconv.FormatUint(end, 10) + "/" + strconv.FormatUint(total, 10)
}

// PostFile answers "POST /files/{filename}": write intent, 201 if new, 200
// if overwrite
func (h *Handlers) PostFile(req *request.Request, params Params) *response.Response {
	resolved, sbErr := h.Box.Resolve(params["filename"], sandbox.Write)
	if sbErr != nil {
		return fileErrorResponse(req, sbErr)
	}

	if err := os.WriteFile(resolved.Path, req.Body, 0o644); err != nil {
		return response.ForFileError(req.Version, wire.StatusInternalServerError, "failed to write file")
	}

	status := wire.StatusCreated
	if resolved.Exists {
		status = wire.StatusOK
	}
	r := response.New(req.Version, status, wire.Body{})
	r.SetContentLength()
	r.Headers.Set("Connection", connValue(req))
	return r
}

// DeleteFile answers "DELETE /files/{filename}": write intent, 204 if
// removed, 404 if absent.
func (h *Handlers) DeleteFile(req *request.Request, params Params) *response.Response {
	resolved, sbErr := h.Box.Resolve(params["filename"], sandbox.Write)
	if sbErr != nil {
		return fileErrorResponse(req, sbErr)
	}
	if !resolved.Exists {
		return response.WithNegotiation(req.Version, wire.StatusNotFound, "File not found", req.HeaderOr("Accept", ""), false, req.WantsClose())
	}
	if err := os.Remove(resolved.Path); err != nil {
		return response.ForFileError(req.Version, wire.StatusInternalServerError, "failed to delete file")
	}
	r := response.New(req.Version, wire.StatusNoContent, wire.Body{})
	r.SetContentLength()
	r.Headers.Set("Connection", connValue(req))
	return r
}

// fileErrorResponse maps a sandbox.Error to the status code a client sees.
func fileErrorResponse(req *request.Request, err *sandbox.Error) *response.Response {
	var status wire.StatusCode
	switch err.Kind {
	case sandbox.Forbidden:
		status = wire.StatusForbidden
	case sandbox.NotFound:
		status = wire.StatusNotFound
	case sandbox.Invalid:
		// "treated as not-found to avoid probing"
		status = wire.StatusNotFound
	default:
		status = wire.StatusInternalServerError
	}
	return response.WithNegotiation(req.Version, status, "File not found", req.HeaderOr("Accept", ""), false, req.WantsClose())
}
