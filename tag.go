package matfile

// dataElementTag is the decoded form of a data-element tag: the element's
// DataType, its payload length in bytes, and the trailing padding needed to
// reach the next 8-byte (long form) or 4-byte (short form) boundary.
//
// spec.md §4.1: a tag is read as one 4-byte word W. If the high 16 bits of
// W are zero, it's the long form (a second 4-byte word carries the byte
// size). Otherwise it's the short form, packing (type, size<=4) into the
// single word.
type dataElementTag struct {
	dataType        DataType
	dataByteSize    uint32
	paddingByteSize uint32
}

func readTag(c *cursor) (dataElementTag, error) {
	off := c.offset()
	w, err := c.readUint32()
	if err != nil {
		return dataElementTag{}, err
	}

	var dt DataType
	var size, padding uint32
	if w&0xFFFF0000 == 0 {
		// Long form.
		dt = DataType(w)
		size, err = c.readUint32()
		if err != nil {
			return dataElementTag{}, err
		}
		padding = ceilToMultiple(size, 8) - size
	} else {
		// Short form.
		dt = DataType(w & 0x0000FFFF)
		size = w >> 16
		if size > 4 {
			return dataElementTag{}, newParseError(ErrInvalidTag, off, "short-form tag declares data_byte_size > 4")
		}
		padding = 4 - size
	}

	if !dt.valid() {
		return dataElementTag{}, newParseError(ErrInvalidTag, off, "unrecognized data type in tag")
	}

	return dataElementTag{dataType: dt, dataByteSize: size, paddingByteSize: padding}, nil
}
