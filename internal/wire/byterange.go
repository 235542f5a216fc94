package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteRange is "{start: u64, end: Option<u64>}" parsed from a
// "Range: bytes=S-[E]" header. End is nil until resolved
// against a concrete file size.
type ByteRange struct {
	Start uint64
	End   *uint64 // nil means "to end of file", resolved by the range reader
}

// ErrMalformedRange is returned when the Range header does not match
// "bytes=S-[E]" with S (and E, if present) as non-negative integers.
var ErrMalformedRange = fmt.Errorf("malformed range header")

// ParseByteRange parses the value of a Range header, e.g. "bytes=2-5" or
// "bytes=2-". It performs only syntactic parsing; bounds checking against a
// file size happens in internal/fileio.
func ParseByteRange(value string) (ByteRange, error) {
	const prefix = "bytes="
	if !strings.HasPrefix(value, prefix) {
		return ByteRange{}, ErrMalformedRange
	}
	spec := strings.TrimPrefix(value, prefix)
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return ByteRange{}, ErrMalformedRange
	}
	startStr, endStr := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if startStr == "" {
		return ByteRange{}, ErrMalformedRange
	}
	start, err := strconv.ParseUint(startStr, 10, 64)
	if err != nil {
		return ByteRange{}, ErrMalformedRange
	}
	if endStr == "" {
		return ByteRange{Start: start}, nil
	}
	end, err := strconv.ParseUint(endStr, 10, 64)
	if err != nil {
		return ByteRange{}, ErrMalformedRange
	}
	return ByteRange{Start: start, End: &end}, nil
}
