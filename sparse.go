package matfile

// Sparse is a compressed-sparse-column numeric array (spec.md §3 "Sparse
// element", §4.6).
//
// ColumnShift has one entry per column plus one (Dimensions[1]+1 entries),
// is nondecreasing, and every RowIndex entry is below Dimensions[0]. These
// relationships are not checked by the decoder; only the RealPart and
// ImagPart lengths are checked against Header.Flags.NZMax.
type Sparse struct {
	Header      ArrayHeader
	RowIndex    []uint32
	ColumnShift []uint32
	RealPart    NumericData
	ImagPart    *NumericData
}

// readIndexSubelement reads the row_index / column_shift subelements,
// which share the same tag shape: (Int32, length>0, length%4==0).
func readIndexSubelement(c *cursor) ([]uint32, error) {
	off := c.offset()
	tag, err := readTag(c)
	if err != nil {
		return nil, err
	}
	if tag.dataType != DataTypeInt32 || tag.dataByteSize == 0 || tag.dataByteSize%4 != 0 {
		return nil, newParseError(ErrUnexpectedSubelement, off,
			"sparse index subelement must have tag (Int32, length>0, length%4==0)")
	}

	n := int(tag.dataByteSize / 4)
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		v, err := c.readInt32()
		if err != nil {
			return nil, err
		}
		out[i] = uint32(v)
	}
	c.skipOptional(int(tag.paddingByteSize))
	return out, nil
}

func readSparseMatrix(c *cursor, header ArrayHeader) (*Sparse, error) {
	rowIndex, err := readIndexSubelement(c)
	if err != nil {
		return nil, err
	}
	columnShift, err := readIndexSubelement(c)
	if err != nil {
		return nil, err
	}

	off := c.offset()
	real, err := readNumericSubelement(c)
	if err != nil {
		return nil, err
	}
	if real.Len() != int(header.Flags.NZMax) {
		return nil, newParseError(ErrMismatch, off,
			"sparse real part length does not equal nzmax")
	}

	var imag *NumericData
	if header.Flags.Complex {
		imOff := c.offset()
		im, err := readNumericSubelement(c)
		if err != nil {
			return nil, err
		}
		if im.Len() != int(header.Flags.NZMax) {
			return nil, newParseError(ErrMismatch, imOff,
				"sparse imaginary part length does not equal nzmax")
		}
		imag = &im
	}

	return &Sparse{
		Header:      header,
		RowIndex:    rowIndex,
		ColumnShift: columnShift,
		RealPart:    real,
		ImagPart:    imag,
	}, nil
}
