package matfile

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// bytesBuf is a tiny helper for producing a valid zlib-wrapped deflate
// stream as a compressed-element fixture.
type bytesBuf struct {
	b []byte
}

func (z *bytesBuf) writeZlib(t *testing.T, plain []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(plain); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	z.b = buf.Bytes()
}

// fixtureBuilder assembles literal .mat byte streams for the test suite.
// The retrieval pack ships no .mat fixture files, so every end-to-end
// scenario in this package is compiled offline the way scigolib-matlab's
// header_test.go builds its fixtures (a small helper, not a binary blob).
type fixtureBuilder struct {
	buf    bytes.Buffer
	endian binary.ByteOrder
}

func newFixtureBuilder(endian binary.ByteOrder) *fixtureBuilder {
	return &fixtureBuilder{endian: endian}
}

func (b *fixtureBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func (b *fixtureBuilder) raw(p []byte) *fixtureBuilder {
	b.buf.Write(p)
	return b
}

func (b *fixtureBuilder) u32(v uint32) *fixtureBuilder {
	var tmp [4]byte
	b.endian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *fixtureBuilder) u16(v uint16) *fixtureBuilder {
	var tmp [2]byte
	b.endian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *fixtureBuilder) i32(v int32) *fixtureBuilder {
	return b.u32(uint32(v))
}

func (b *fixtureBuilder) f64(v float64) *fixtureBuilder {
	return b.raw(float64Bytes(b.endian, v))
}

func float64Bytes(endian binary.ByteOrder, v float64) []byte {
	var tmp [8]byte
	endian.PutUint64(tmp[:], math.Float64bits(v))
	return tmp[:]
}

// longTag writes a long-form tag (type, size) followed by payload and its
// trailing 8-byte-alignment padding.
func (b *fixtureBuilder) longTag(dt DataType, payload []byte) *fixtureBuilder {
	b.u32(uint32(dt))
	b.u32(uint32(len(payload)))
	b.raw(payload)
	pad := int(ceilToMultiple(uint32(len(payload)), 8)) - len(payload)
	b.raw(make([]byte, pad))
	return b
}

// shortTag writes a short-form (small data element) tag: a single 4-byte
// word packing (size, type), followed by the (<=4-byte) payload padded out
// to a total of 8 bytes.
func (b *fixtureBuilder) shortTag(dt DataType, payload []byte) *fixtureBuilder {
	word := (uint32(len(payload)) << 16) | uint32(dt)
	b.u32(word)
	b.raw(payload)
	b.raw(make([]byte, 4-len(payload)))
	return b
}

func (b *fixtureBuilder) int32LE(vs []int32) []byte {
	out := make([]byte, 4*len(vs))
	for i, v := range vs {
		b.endian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

func (b *fixtureBuilder) float64LE(vs []float64) []byte {
	out := make([]byte, 8*len(vs))
	for i, v := range vs {
		b.endian.PutUint64(out[i*8:], math.Float64bits(v))
	}
	return out
}

func (b *fixtureBuilder) int32ToUint32(vs []int32) []byte {
	return b.int32LE(vs)
}

// arrayFlagsPayload builds the array-flags subelement payload.
func arrayFlagsPayload(endian binary.ByteOrder, complex, global, logical bool, class ArrayType, nzmax uint32) []byte {
	var flagsAndClass uint32
	flagsAndClass = uint32(class)
	if complex {
		flagsAndClass |= flagBitComplex
	}
	if global {
		flagsAndClass |= flagBitGlobal
	}
	if logical {
		flagsAndClass |= flagBitLogical
	}
	out := make([]byte, 8)
	endian.PutUint32(out[0:4], flagsAndClass)
	endian.PutUint32(out[4:8], nzmax)
	return out
}

func (b *fixtureBuilder) arrayFlags(complex, global, logical bool, class ArrayType, nzmax uint32) *fixtureBuilder {
	return b.longTag(DataTypeUInt32, arrayFlagsPayload(b.endian, complex, global, logical, class, nzmax))
}

func (b *fixtureBuilder) dimensions(dims []int32) *fixtureBuilder {
	return b.longTag(DataTypeInt32, b.int32LE(dims))
}

func (b *fixtureBuilder) name(n string) *fixtureBuilder {
	return b.longTag(DataTypeInt8, []byte(n))
}

func (b *fixtureBuilder) doubleSubelement(vs []float64) *fixtureBuilder {
	return b.longTag(DataTypeDouble, b.float64LE(vs))
}

func (b *fixtureBuilder) int32Subelement(vs []int32) *fixtureBuilder {
	return b.longTag(DataTypeInt32, b.int32LE(vs))
}

func (b *fixtureBuilder) utf8Subelement(s string) *fixtureBuilder {
	return b.longTag(DataTypeUtf8, []byte(s))
}

// matrixElement wraps an already-built array-header+body payload as a
// top-level (or struct-field) Matrix data element.
func (b *fixtureBuilder) matrixElement(body []byte) *fixtureBuilder {
	return b.longTag(DataTypeMatrix, body)
}

// compressedElement writes a Compressed data element's tag and payload with
// no trailing padding, per spec.md §4.2 ("After a Compressed element, do
// not consume padding").
func (b *fixtureBuilder) compressedElement(payload []byte) *fixtureBuilder {
	b.u32(uint32(DataTypeCompressed))
	b.u32(uint32(len(payload)))
	b.raw(payload)
	return b
}

func buildHeader(endian binary.ByteOrder, text string) []byte {
	var buf bytes.Buffer
	textBytes := make([]byte, headerTextLen)
	copy(textBytes, text)
	buf.Write(textBytes)
	buf.Write(make([]byte, headerSSDOLen))

	var verBuf [2]byte
	endian.PutUint16(verBuf[:], expectedVersion)
	buf.Write(verBuf[:])

	if endian == binary.BigEndian {
		buf.WriteString("MI")
	} else {
		buf.WriteString("IM")
	}
	return buf.Bytes()
}
