package request

import (
	"net"

	"golang.org/x/net/idna"
)

// NormalizedHost returns the Host header with its host component
// punycode-normalized, the way curol-go-net/http/util.go's
// PunycodeHostPort does for display and logging. Nothing in routing or
// sandbox resolution consults this value — Host is parsed and validated
// for log quality only, never dispatched on.
func (r *Request) NormalizedHost() (string, error) {
	v, ok := r.Headers.Get("Host")
	if !ok || v == "" {
		return "", nil
	}
	if isASCII(v) {
		return v, nil
	}

	host, port, err := net.SplitHostPort(v)
	if err != nil {
		host = v
		port = ""
	}
	host, err = idna.ToASCII(host)
	if err != nil {
		return "", err
	}
	if port == "" {
		return host, nil
	}
	return net.JoinHostPort(host, port), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
