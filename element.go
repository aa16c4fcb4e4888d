package matfile

import "encoding/binary"

// Element is the tagged union returned for every array the parser
// encounters: a Numeric, Sparse, Character, or Structure array, or an
// Unsupported placeholder for classes this package declines to decode
// (spec.md §3 "Element").
//
// The concrete types *Numeric, *Sparse, *Character, *Structure, and
// Unsupported all implement Element; callers type-switch on the value to
// recover the concrete shape.
type Element interface {
	isElement()
}

func (*Numeric) isElement()    {}
func (*Sparse) isElement()     {}
func (*Character) isElement()  {}
func (*Structure) isElement()  {}
func (Unsupported) isElement() {}

// Unsupported marks a top-level tag this package doesn't decode (anything
// other than Matrix/Compressed) or an array class this package declines to
// decode (Cell, Object). It is not an error: spec.md §7 requires these to
// degrade gracefully rather than fail the whole parse.
type Unsupported struct {
	// TagType is the top-level DataType that was skipped, if this
	// Unsupported came from an unrecognized top-level tag. Zero if it came
	// from an unsupported array class instead.
	TagType DataType
	// Class is the array class that was skipped, if this Unsupported came
	// from decoding an array body. Zero if it came from an unrecognized
	// top-level tag instead.
	Class ArrayType
}

// readArrayBody dispatches on flags.Class once the ArrayHeader has already
// been decoded (spec.md §4.4 step 4).
func readArrayBody(c *cursor, header ArrayHeader) (Element, error) {
	switch header.Flags.Class {
	case ArrayTypeChar:
		return readCharacterMatrix(c, header)
	case ArrayTypeStruct:
		return readStructMatrix(c, header)
	case ArrayTypeSparse:
		return readSparseMatrix(c, header)
	case ArrayTypeCell, ArrayTypeObject:
		return Unsupported{Class: header.Flags.Class}, nil
	default:
		if _, ok := header.Flags.Class.numericDataType(); ok {
			return readNumericMatrix(c, header)
		}
		return Unsupported{Class: header.Flags.Class}, nil
	}
}

// readMatrixElement decodes an array body from a sub-slice already sized to
// exactly one matrix payload (spec.md §4.4). base is payload's absolute
// offset within the buffer originally passed to ParseAll, so that
// ParseError.Offset values from inside the matrix body localize the fault
// in the whole file rather than just within this payload.
func readMatrixElement(payload []byte, base int, endian binary.ByteOrder, suppliedName string) (Element, error) {
	c := newCursorAt(payload, base, endian)
	header, err := readArrayHeader(c, suppliedName)
	if err != nil {
		return nil, err
	}
	return readArrayBody(c, header)
}

// readElement reads one top-level-shaped data element: a tag, then a
// dispatch on its DataType (spec.md §4.2 "One element"). suppliedName is
// non-empty only when this is a structure field.
func readElement(c *cursor, suppliedName string) (Element, error) {
	tag, err := readTag(c)
	if err != nil {
		return nil, err
	}

	switch tag.dataType {
	case DataTypeMatrix:
		payloadBase := c.offset()
		payload, err := c.take(int(tag.dataByteSize))
		if err != nil {
			return nil, err
		}
		el, err := readMatrixElement(payload, payloadBase, c.endian, suppliedName)
		if err != nil {
			return nil, err
		}
		c.skipOptional(int(tag.paddingByteSize))
		return el, nil

	case DataTypeCompressed:
		if suppliedName != "" {
			return nil, newParseError(ErrMismatch, c.offset(),
				"a compressed element cannot appear as a structure field")
		}
		payloadOff := c.offset()
		payload, err := c.take(int(tag.dataByteSize))
		if err != nil {
			return nil, err
		}
		// No padding is consumed after a Compressed element: the
		// compressed stream is not aligned in the outer file (spec.md
		// §4.2 "Alignment").
		el, err := readCompressedElement(payload, c.endian)
		if pe, ok := err.(*ParseError); ok && pe.Kind == ErrDecompression {
			// Point decompression failures at the compressed payload.
			pe.Offset = payloadOff
		}
		return el, err

	default:
		if _, err := c.take(int(tag.dataByteSize)); err != nil {
			return nil, err
		}
		c.skipOptional(int(tag.paddingByteSize))
		return Unsupported{TagType: tag.dataType}, nil
	}
}
