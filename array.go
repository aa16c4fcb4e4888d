package matfile

import "unicode/utf8"

// ArrayFlags is the decoded form of a matrix's array-flags subelement
// (spec.md §3 "ArrayFlags", §4.4 step 1).
type ArrayFlags struct {
	Complex bool
	Global  bool
	Logical bool
	Class   ArrayType
	// NZMax is the declared upper bound on stored nonzero entries. Only
	// meaningful for Sparse arrays.
	NZMax uint32
}

const (
	flagBitLogical = 1 << 9
	flagBitGlobal  = 1 << 10
	flagBitComplex = 1 << 11
)

func readArrayFlags(c *cursor) (ArrayFlags, error) {
	off := c.offset()
	tag, err := readTag(c)
	if err != nil {
		return ArrayFlags{}, err
	}
	if tag.dataType != DataTypeUInt32 || tag.dataByteSize != 8 {
		return ArrayFlags{}, newParseError(ErrUnexpectedSubelement, off,
			"array-flags subelement must have tag (UInt32, length=8)")
	}

	flagsAndClass, err := c.readUint32()
	if err != nil {
		return ArrayFlags{}, err
	}
	nzmax, err := c.readUint32()
	if err != nil {
		return ArrayFlags{}, err
	}

	class := ArrayType(flagsAndClass & 0xFF)
	if !class.valid() {
		return ArrayFlags{}, newParseError(ErrInvalidArrayClass, off,
			"array flags class byte is not in 1..15")
	}

	return ArrayFlags{
		Complex: flagsAndClass&flagBitComplex != 0,
		Global:  flagsAndClass&flagBitGlobal != 0,
		Logical: flagsAndClass&flagBitLogical != 0,
		Class:   class,
		NZMax:   nzmax,
	}, nil
}

// Dimensions is the ordered sequence of signed 32-bit extents of an array
// (spec.md §3 "Dimensions").
type Dimensions []int32

// Count returns the product of all extents, i.e. the total element count.
func (d Dimensions) Count() int {
	n := 1
	for _, x := range d {
		n *= int(x)
	}
	return n
}

func readDimensions(c *cursor) (Dimensions, error) {
	off := c.offset()
	tag, err := readTag(c)
	if err != nil {
		return nil, err
	}
	if tag.dataType != DataTypeInt32 || tag.dataByteSize < 8 || tag.dataByteSize%4 != 0 {
		return nil, newParseError(ErrUnexpectedSubelement, off,
			"dimensions subelement must have tag (Int32, length>=8, length%4==0)")
	}

	n := int(tag.dataByteSize / 4)
	dims := make(Dimensions, n)
	for i := 0; i < n; i++ {
		v, err := c.readInt32()
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, newParseError(ErrUnexpectedSubelement, off,
				"dimensions subelement contains a negative extent")
		}
		dims[i] = v
	}
	c.skipOptional(int(tag.paddingByteSize))
	return dims, nil
}

// readArrayName decodes the name subelement (spec.md §4.4 step 3). It
// always consumes the in-stream name region (which may be empty) and
// reconciles it against suppliedName: at most one of the two may be
// non-empty.
func readArrayName(c *cursor, suppliedName string) (string, error) {
	off := c.offset()
	tag, err := readTag(c)
	if err != nil {
		return "", err
	}
	if tag.dataType != DataTypeInt8 {
		return "", newParseError(ErrUnexpectedSubelement, off,
			"name subelement must have data type Int8")
	}

	var inStreamName string
	if tag.dataByteSize > 0 {
		raw, err := c.take(int(tag.dataByteSize))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(raw) {
			return "", newParseError(ErrBadEncoding, off, "array name is not valid UTF-8")
		}
		inStreamName = string(raw)
		c.skipOptional(int(tag.paddingByteSize))
	}

	switch {
	case suppliedName != "" && inStreamName != "":
		return "", newParseError(ErrMismatch, off,
			"both an externally supplied name and an in-stream name were provided")
	case suppliedName != "":
		return suppliedName, nil
	default:
		return inStreamName, nil
	}
}

// ArrayHeader is the common prefix of every array: its flags, dimensions,
// and name (spec.md §3 "Element... Every element carries an ArrayHeader").
type ArrayHeader struct {
	Flags      ArrayFlags
	Dimensions Dimensions
	Name       string
}

func readArrayHeader(c *cursor, suppliedName string) (ArrayHeader, error) {
	flags, err := readArrayFlags(c)
	if err != nil {
		return ArrayHeader{}, err
	}
	dims, err := readDimensions(c)
	if err != nil {
		return ArrayHeader{}, err
	}
	name, err := readArrayName(c, suppliedName)
	if err != nil {
		return ArrayHeader{}, err
	}
	return ArrayHeader{Flags: flags, Dimensions: dims, Name: name}, nil
}
