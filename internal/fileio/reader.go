// Package fileio implements the byte-range file reader: full reads
// classify Text vs Binary by extension and UTF-8 validity, range reads
// seek and read exactly end-start+1 bytes.
package fileio

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/meridianhq/originhttp/internal/wire"
)

// ErrInvalidRange is returned for a Range header that does not resolve to a
// legal span of a concrete file.
var ErrInvalidRange = errors.New("invalid range")

// Result holds a read's body, the file's total size, and the resolved
// (start, end) when this was a range read.
type Result struct {
	Body      wire.Body
	TotalSize uint64
	Range     *wire.ByteRange // non-nil, with End resolved, for a range read
}

// ReadFull reads the entire file at path, classifying the body as Text if
// the extension is text-ish and the bytes are valid UTF-8, Binary
// otherwise.
func ReadFull(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	ext := ExtensionOf(path)
	body := wire.BinaryBody(data)
	if ext != "" && IsTextExtension(ext) && utf8.Valid(data) {
		body = wire.TextBody(string(data))
	}
	return Result{Body: body, TotalSize: uint64(len(data))}, nil
}

// ReadRange reads exactly the requested span of the file at path. end is
// resolved against the file's actual size if the caller did not supply one.
func ReadRange(path string, rng wire.ByteRange) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, err
	}
	size := uint64(info.Size())
	if size == 0 {
		return Result{}, ErrInvalidRange
	}

	end := size - 1
	if rng.End != nil {
		end = *rng.End
	}
	if rng.Start > end || end >= size {
		return Result{}, ErrInvalidRange
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	if _, err := f.Seek(int64(rng.Start), io.SeekStart); err != nil {
		return Result{}, err
	}
	length := end - rng.Start + 1
	buf := make([]byte, length)
	if _, err := io.ReadFull(f, buf); err != nil {
		return Result{}, err
	}

	return Result{
		Body:      wire.BinaryBody(buf),
		TotalSize: size,
		Range:     &wire.ByteRange{Start: rng.Start, End: &end},
	}, nil
}
