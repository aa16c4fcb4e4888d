package matfile

import (
	"bytes"
	"unicode/utf8"
)

// Structure is a record array whose fields are themselves Elements
// (spec.md §3 "Structure element", §4.8). Field order on disk is
// significant and is preserved; field_names and values always have equal
// length.
//
// It is implemented as two parallel ordered slices rather than a keyed map:
// declaration order is part of the on-disk contract, duplicate names
// (though not expected) cannot corrupt an existing entry, and lookup by
// linear scan is acceptable for the field counts structures typically have
// (spec.md §9 "Structure record type").
type Structure struct {
	Header     ArrayHeader
	fieldNames []string
	values     []Element
}

// Len returns the number of fields.
func (s *Structure) Len() int {
	return len(s.fieldNames)
}

// FieldNames returns the field names in declaration order. The returned
// slice must not be mutated by the caller.
func (s *Structure) FieldNames() []string {
	return s.fieldNames
}

// Values returns the field values in declaration order. The returned slice
// must not be mutated by the caller.
func (s *Structure) Values() []Element {
	return s.values
}

// indexOf returns the index of the first field named name, or -1.
// Duplicate names are not expected; if present, this resolves to the first
// occurrence (spec.md §4.8 "Result preserves field order...").
func (s *Structure) indexOf(name string) int {
	for i, n := range s.fieldNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Get returns the value of the named field, and whether it was found.
func (s *Structure) Get(name string) (Element, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return nil, false
	}
	return s.values[i], true
}

// GetMut returns a pointer into the values slice for the named field,
// allowing in-place mutation, and whether it was found.
func (s *Structure) GetMut(name string) (*Element, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return nil, false
	}
	return &s.values[i], true
}

// Replace sets the value of the named field, returning the previous value
// (if the field already existed). If the field does not exist, it is
// appended.
func (s *Structure) Replace(name string, v Element) (Element, bool) {
	i := s.indexOf(name)
	if i < 0 {
		s.Append(name, v)
		return nil, false
	}
	prev := s.values[i]
	s.values[i] = v
	return prev, true
}

// Append adds a new (name, value) pair at the end, regardless of whether
// name already exists (mirroring the on-disk tolerance for duplicate
// names; lookups still resolve to the first occurrence).
func (s *Structure) Append(name string, v Element) {
	s.fieldNames = append(s.fieldNames, name)
	s.values = append(s.values, v)
}

// Remove deletes the first field named name via an O(n) slice splice,
// returning its value and whether it was found.
func (s *Structure) Remove(name string) (Element, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return nil, false
	}
	v := s.values[i]
	s.fieldNames = append(s.fieldNames[:i], s.fieldNames[i+1:]...)
	s.values = append(s.values[:i], s.values[i+1:]...)
	return v, true
}

// Iter calls fn for each (name, value) pair in declaration order. Iteration
// stops early if fn returns false.
func (s *Structure) Iter(fn func(name string, v Element) bool) {
	for i, n := range s.fieldNames {
		if !fn(n, s.values[i]) {
			return
		}
	}
}

func readStructFieldNameLength(c *cursor) (int, error) {
	off := c.offset()
	data, err := readNumericSubelement(c)
	if err != nil {
		return 0, err
	}
	var v int64
	switch data.Type {
	case DataTypeInt8:
		if len(data.Int8) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = int64(data.Int8[0])
	case DataTypeUInt8:
		if len(data.UInt8) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = int64(data.UInt8[0])
	case DataTypeInt16:
		if len(data.Int16) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = int64(data.Int16[0])
	case DataTypeUInt16:
		if len(data.UInt16) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = int64(data.UInt16[0])
	case DataTypeInt32:
		if len(data.Int32) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = int64(data.Int32[0])
	case DataTypeUInt32:
		if len(data.UInt32) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = int64(data.UInt32[0])
	case DataTypeInt64:
		if len(data.Int64) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = data.Int64[0]
	case DataTypeUInt64:
		if len(data.UInt64) != 1 {
			return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold exactly one value")
		}
		v = int64(data.UInt64[0])
	default:
		return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must hold an integer type")
	}
	if v <= 0 {
		return 0, newParseError(ErrUnexpectedSubelement, off, "field-name-length subelement must be positive")
	}
	return int(v), nil
}

func readStructFieldNames(c *cursor, maxNameLen int) ([]string, error) {
	off := c.offset()
	tag, err := readTag(c)
	if err != nil {
		return nil, err
	}
	if tag.dataType != DataTypeInt8 || tag.dataByteSize == 0 {
		return nil, newParseError(ErrUnexpectedSubelement, off,
			"field-names subelement must have tag (Int8, length>0)")
	}

	raw, err := c.take(int(tag.dataByteSize))
	if err != nil {
		return nil, err
	}
	c.skipOptional(int(tag.paddingByteSize))

	count := len(raw) / maxNameLen
	names := make([]string, count)
	for i := 0; i < count; i++ {
		chunk := raw[i*maxNameLen : (i+1)*maxNameLen]
		nul := bytes.IndexByte(chunk, 0)
		if nul < 0 {
			return nil, newParseError(ErrBadEncoding, off, "struct field name chunk has no NUL terminator")
		}
		nameBytes := chunk[:nul]
		if !utf8.Valid(nameBytes) {
			return nil, newParseError(ErrBadEncoding, off, "struct field name is not valid UTF-8")
		}
		names[i] = string(nameBytes)
	}
	return names, nil
}

func readStructMatrix(c *cursor, header ArrayHeader) (*Structure, error) {
	maxNameLen, err := readStructFieldNameLength(c)
	if err != nil {
		return nil, err
	}
	names, err := readStructFieldNames(c, maxNameLen)
	if err != nil {
		return nil, err
	}

	values := make([]Element, len(names))
	for i, name := range names {
		v, err := readElement(c, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return &Structure{Header: header, fieldNames: names, values: values}, nil
}
