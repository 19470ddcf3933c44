package input

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Type represents the compression detected on an input stream
type Type int

const (
	Plain Type = iota
	Gzip
	Bzip2
	Xz
	Zstd
)

func (t Type) String() string {
	switch t {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	case Zstd:
		return "zstd"
	default:
		return "plain"
	}
}

var magics = []struct {
	typ   Type
	magic []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Bzip2, []byte("BZh")},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
}

// Detect inspects the leading bytes of a stream
func Detect(header []byte) Type {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.magic) {
			return m.typ
		}
	}
	return Plain
}

// Reader is a decompressed view of an input file
type Reader struct {
	io.Reader
	Type Type

	closers []func() error
}

// Close releases the decoder and the underlying file
func (r *Reader) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// Open opens path for reading, transparently decompressing it. "-" reads
// standard input.
func Open(path string) (*Reader, error) {
	if path == "" || path == "-" {
		return NewReader(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closers = append([]func() error{f.Close}, r.closers...)
	return r, nil
}

// NewReader wraps src with the decoder matching its magic bytes. Closing the
// returned Reader does not close src.
func NewReader(src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)
	header, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read input header: %w", err)
	}

	r := &Reader{Type: Detect(header)}
	switch r.Type {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		r.Reader = gz
		r.closers = append(r.closers, gz.Close)
	case Bzip2:
		r.Reader = bzip2.NewReader(br)
	case Xz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r.Reader = xzr
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		r.Reader = zr
		r.closers = append(r.closers, func() error {
			zr.Close()
			return nil
		})
	default:
		r.Reader = br
	}
	return r, nil
}
