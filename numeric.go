package matfile

// NumericData is a tagged union over the container's ten numeric primitive
// encodings, each holding an ordered, column-major sequence of values
// (spec.md §3 "NumericData").
type NumericData struct {
	Type    DataType
	Int8    []int8
	UInt8   []uint8
	Int16   []int16
	UInt16  []uint16
	Int32   []int32
	UInt32  []uint32
	Int64   []int64
	UInt64  []uint64
	Single  []float32
	Double  []float64
}

// Len returns the element count of whichever slice is populated.
func (n NumericData) Len() int {
	switch n.Type {
	case DataTypeInt8:
		return len(n.Int8)
	case DataTypeUInt8:
		return len(n.UInt8)
	case DataTypeInt16:
		return len(n.Int16)
	case DataTypeUInt16:
		return len(n.UInt16)
	case DataTypeInt32:
		return len(n.Int32)
	case DataTypeUInt32:
		return len(n.UInt32)
	case DataTypeInt64:
		return len(n.Int64)
	case DataTypeUInt64:
		return len(n.UInt64)
	case DataTypeSingle:
		return len(n.Single)
	case DataTypeDouble:
		return len(n.Double)
	default:
		return 0
	}
}

// readNumericSubelement reads one numeric subelement (real_part, imag_part,
// or a row/column-adjacent numeric payload such as the struct field-name
// length). spec.md §4.7 "Numeric subelement decoding".
func readNumericSubelement(c *cursor) (NumericData, error) {
	off := c.offset()
	tag, err := readTag(c)
	if err != nil {
		return NumericData{}, err
	}

	switch tag.dataType {
	case DataTypeMatrix, DataTypeCompressed, DataTypeUtf8, DataTypeUtf16, DataTypeUtf32:
		return NumericData{}, newParseError(ErrUnexpectedSubelement, off,
			"numeric subelement cannot have tag type "+tag.dataType.String())
	}

	width := tag.dataType.byteSize()
	if int(tag.dataByteSize)%width != 0 {
		return NumericData{}, newParseError(ErrUnexpectedSubelement, off,
			"numeric subelement byte size is not a multiple of its element width")
	}
	count := int(tag.dataByteSize) / width

	data := NumericData{Type: tag.dataType}
	var readErr error
	switch tag.dataType {
	case DataTypeInt8:
		data.Int8 = make([]int8, count)
		for i := range data.Int8 {
			if data.Int8[i], readErr = c.readInt8(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeUInt8:
		data.UInt8 = make([]uint8, count)
		for i := range data.UInt8 {
			if data.UInt8[i], readErr = c.readUint8(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeInt16:
		data.Int16 = make([]int16, count)
		for i := range data.Int16 {
			if data.Int16[i], readErr = c.readInt16(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeUInt16:
		data.UInt16 = make([]uint16, count)
		for i := range data.UInt16 {
			if data.UInt16[i], readErr = c.readUint16(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeInt32:
		data.Int32 = make([]int32, count)
		for i := range data.Int32 {
			if data.Int32[i], readErr = c.readInt32(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeUInt32:
		data.UInt32 = make([]uint32, count)
		for i := range data.UInt32 {
			if data.UInt32[i], readErr = c.readUint32(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeInt64:
		data.Int64 = make([]int64, count)
		for i := range data.Int64 {
			if data.Int64[i], readErr = c.readInt64(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeUInt64:
		data.UInt64 = make([]uint64, count)
		for i := range data.UInt64 {
			if data.UInt64[i], readErr = c.readUint64(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeSingle:
		data.Single = make([]float32, count)
		for i := range data.Single {
			if data.Single[i], readErr = c.readFloat32(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	case DataTypeDouble:
		data.Double = make([]float64, count)
		for i := range data.Double {
			if data.Double[i], readErr = c.readFloat64(); readErr != nil {
				return NumericData{}, readErr
			}
		}
	default:
		return NumericData{}, newParseError(ErrInvalidTag, off, "unrecognized numeric subelement type")
	}

	c.skipOptional(int(tag.paddingByteSize))
	return data, nil
}

// numericCompatible implements the type-compatibility table of spec.md
// §4.7: which on-disk subelement DataTypes may legally encode a given
// array class (the writer may narrow on disk; readers must accept any
// narrower-or-equal-width compatible encoding).
func numericCompatible(class DataType, sub DataType) bool {
	switch class {
	case DataTypeInt8:
		return sub == DataTypeInt8
	case DataTypeUInt8:
		return sub == DataTypeUInt8
	case DataTypeInt16:
		return sub == DataTypeUInt8 || sub == DataTypeInt16
	case DataTypeUInt16:
		return sub == DataTypeUInt8 || sub == DataTypeUInt16
	case DataTypeInt32:
		return sub == DataTypeUInt8 || sub == DataTypeInt16 || sub == DataTypeUInt16 || sub == DataTypeInt32
	case DataTypeUInt32:
		return sub == DataTypeUInt8 || sub == DataTypeInt16 || sub == DataTypeUInt16 || sub == DataTypeUInt32
	case DataTypeInt64:
		return sub == DataTypeUInt8 || sub == DataTypeInt16 || sub == DataTypeUInt16 ||
			sub == DataTypeInt32 || sub == DataTypeInt64
	case DataTypeUInt64:
		return sub == DataTypeUInt8 || sub == DataTypeInt16 || sub == DataTypeUInt16 ||
			sub == DataTypeInt32 || sub == DataTypeUInt64
	case DataTypeSingle:
		return sub == DataTypeUInt8 || sub == DataTypeInt16 || sub == DataTypeUInt16 ||
			sub == DataTypeInt32 || sub == DataTypeSingle
	case DataTypeDouble:
		return sub == DataTypeUInt8 || sub == DataTypeInt16 || sub == DataTypeUInt16 ||
			sub == DataTypeInt32 || sub == DataTypeDouble
	default:
		return false
	}
}

// Numeric is a dense numeric (real or complex) array (spec.md §3 "Numeric
// element").
type Numeric struct {
	Header   ArrayHeader
	RealPart NumericData
	ImagPart *NumericData
}

func readNumericMatrix(c *cursor, header ArrayHeader) (*Numeric, error) {
	off := c.offset()
	real, err := readNumericSubelement(c)
	if err != nil {
		return nil, err
	}

	classType, _ := header.Flags.Class.numericDataType()
	required := header.Dimensions.Count()
	if real.Len() != required || !numericCompatible(classType, real.Type) {
		return nil, newParseError(ErrMismatch, off,
			"numeric real part length or encoding disagrees with dimensions/class")
	}

	var imag *NumericData
	if header.Flags.Complex {
		im, err := readNumericSubelement(c)
		if err != nil {
			return nil, err
		}
		if im.Len() != required || !numericCompatible(classType, im.Type) {
			return nil, newParseError(ErrMismatch, off,
				"numeric imaginary part length or encoding disagrees with dimensions/class")
		}
		imag = &im
	}

	return &Numeric{Header: header, RealPart: real, ImagPart: imag}, nil
}
