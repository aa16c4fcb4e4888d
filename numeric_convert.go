package matfile

// AsInt64 widens whichever integer slice is populated into a []int64, for
// callers that don't want to switch on Type themselves. It panics if Type
// is not one of the integer encodings -- mirrors the teacher's
// Matrix.IntArray convenience accessor, adapted to NumericData.
func (n NumericData) AsInt64() []int64 {
	out := make([]int64, 0, n.Len())
	switch n.Type {
	case DataTypeInt8:
		for _, v := range n.Int8 {
			out = append(out, int64(v))
		}
	case DataTypeUInt8:
		for _, v := range n.UInt8 {
			out = append(out, int64(v))
		}
	case DataTypeInt16:
		for _, v := range n.Int16 {
			out = append(out, int64(v))
		}
	case DataTypeUInt16:
		for _, v := range n.UInt16 {
			out = append(out, int64(v))
		}
	case DataTypeInt32:
		for _, v := range n.Int32 {
			out = append(out, int64(v))
		}
	case DataTypeUInt32:
		for _, v := range n.UInt32 {
			out = append(out, int64(v))
		}
	case DataTypeInt64:
		out = append(out, n.Int64...)
	case DataTypeUInt64:
		for _, v := range n.UInt64 {
			out = append(out, int64(v))
		}
	default:
		panic("matfile: AsInt64 called on a non-integer NumericData (" + n.Type.String() + ")")
	}
	return out
}

// AsFloat64 widens a Single or Double slice into a []float64. It panics for
// any other Type -- mirrors the teacher's Matrix.DoubleArray accessor.
func (n NumericData) AsFloat64() []float64 {
	switch n.Type {
	case DataTypeDouble:
		out := make([]float64, len(n.Double))
		copy(out, n.Double)
		return out
	case DataTypeSingle:
		out := make([]float64, len(n.Single))
		for i, v := range n.Single {
			out[i] = float64(v)
		}
		return out
	default:
		panic("matfile: AsFloat64 called on neither Single nor Double NumericData (" + n.Type.String() + ")")
	}
}
