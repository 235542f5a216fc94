package request

import (
	"github.com/meridianhq/originhttp/internal/header"
	"github.com/meridianhq/originhttp/internal/wire"
)

// ParseError is returned for a framing failure. It carries
// enough of the partial parse for the connection loop to still answer with
// a negotiated error body: the best-guess status, the version to echo back
// (defaulting to HTTP/1.1), and whatever headers were parsed before the
// error was hit.
type ParseError struct {
	Status  wire.StatusCode
	Version wire.Version
	Headers *header.Map
	Reason  string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func newParseError(status wire.StatusCode, version wire.Version, headers *header.Map, reason string) *ParseError {
	if version == "" {
		version = wire.HTTP11
	}
	if headers == nil {
		headers = header.New()
	}
	return &ParseError{Status: status, Version: version, Headers: headers, Reason: reason}
}
