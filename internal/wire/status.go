package wire

import "fmt"

// StatusCode is one of the status codes this server emits.
type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusNoContent           StatusCode = 204
	StatusPartialContent      StatusCode = 206
	StatusBadRequest          StatusCode = 400
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
)

var reasons = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusNoContent:           "No Content",
	StatusPartialContent:      "Partial Content",
	StatusBadRequest:          "Bad Request",
	StatusForbidden:           "Forbidden",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
}

// Reason returns the standard reason phrase for the status code.
func (s StatusCode) Reason() string {
	if r, ok := reasons[s]; ok {
		return r
	}
	return "Unknown"
}

// String renders the status line fragment "<code> <reason>".
func (s StatusCode) String() string {
	return fmt.Sprintf("%d %s", int(s), s.Reason())
}
