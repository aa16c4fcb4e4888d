package matfile

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zlib"
)

// readCompressedElement decompresses payload (a zlib-wrapped deflate
// stream, per spec.md §4.9) and recursively decodes exactly one element
// from the result, ignoring any residual bytes. This is the only place the
// element grammar re-enters itself across a compression boundary (spec.md
// §9 "Recursive grammar inside compression").
func readCompressedElement(payload []byte, endian binary.ByteOrder) (Element, error) {
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, wrapParseError(ErrDecompression, 0, "rejected deflate stream", err)
	}
	defer zr.Close()

	decompressed, err := io.ReadAll(zr)
	if err != nil {
		return nil, wrapParseError(ErrDecompression, 0, "truncated or corrupt deflate stream", err)
	}

	inner := newCursor(decompressed, endian)
	el, err := readElement(inner, "")
	if err != nil {
		return nil, err
	}
	return el, nil
}
