// Package compress implements response-compression middleware: q-sorted
// Accept-Encoding negotiation over gzip, deflate, and brotli, with a
// 1024-byte floor below which identity is forced.
//
// Codec choices: klauspost/compress for gzip/deflate, andybalholm/brotli
// for brotli.
package compress

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/meridianhq/originhttp/internal/response"
	"github.com/meridianhq/originhttp/internal/wire"
)

const minCompressibleSize = 1024

type candidate struct {
	name string
	q    float64
}

// parseAcceptEncoding splits a comma-separated Accept-Encoding value into
// (name, q) candidates, defaulting missing q to 1.0 and dropping q=0
// entries
func parseAcceptEncoding(value string) []candidate {
	var out []candidate
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		parts := strings.SplitN(token, ";", 2)
		name := strings.ToLower(strings.TrimSpace(parts[0]))
		q := 1.0
		if len(parts) == 2 {
			qPart := strings.TrimSpace(parts[1])
			if strings.HasPrefix(qPart, "q=") {
				if parsed, err := strconv.ParseFloat(strings.TrimPrefix(qPart, "q="), 64); err == nil {
					q = parsed
				}
			}
		}
		if q == 0 {
			continue
		}
		out = append(out, candidate{name: name, q: q})
	}
	return out
}

// selectEncoding returns the highest-q recognized encoding name, or ""
// for identity.
func selectEncoding(acceptEncoding string) string {
	candidates := parseAcceptEncoding(acceptEncoding)
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].q > candidates[j].q })
	for _, c := range candidates {
		switch c.name {
		case "gzip", "deflate":
			return c.name
		case "br", "brotli":
			return "br"
		}
	}
	return ""
}

func encode(name string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch name {
	case "gzip":
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case "deflate":
		w, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case "br":
		w := brotli.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	default:
		return data, nil
	}
	return buf.Bytes(), nil
}

// Wrap negotiates and applies compression to resp: below the 1024-byte
// floor, or with no recognized encoding, resp passes through unchanged.
// Otherwise the body is replaced with the compressed bytes, Content-Length
// is recomputed, and Content-Encoding is set.
func Wrap(resp *response.Response, acceptEncoding string) (*response.Response, error) {
	if resp.Body.Len() < minCompressibleSize {
		return resp, nil
	}
	name := selectEncoding(acceptEncoding)
	if name == "" {
		return resp, nil
	}

	compressed, err := encode(name, resp.Body.Bytes())
	if err != nil {
		return nil, err
	}

	out := response.New(resp.Version, resp.Status, wire.BinaryBody(compressed))
	resp.Headers.Each(func(k, v string) {
		if strings.EqualFold(k, "Content-Length") {
			return
		}
		out.Headers.Set(k, v)
	})
	out.Headers.Set("Content-Encoding", name)
	out.SetContentLength()
	return out, nil
}
