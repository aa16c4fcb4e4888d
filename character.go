package matfile

import (
	"unicode/utf16"
	"unicode/utf8"
)

// CharacterData is either a decoded string of Unicode scalars, or a raw
// UTF-16-code-unit sequence with no Unicode interpretation applied
// (spec.md §3 "Character element", §9 "Strings": the two must not be
// conflated, since round-trip equality depends on the distinction).
type CharacterData struct {
	IsUnicode bool
	Unicode   string
	NonUnicode []uint16
}

// Character is a character (text) array (spec.md §3 "Character element",
// §4.5).
type Character struct {
	Header   ArrayHeader
	RealPart CharacterData
	ImagPart *CharacterData
}

func readCharacterData(c *cursor, cellCount int) (CharacterData, error) {
	off := c.offset()
	tag, err := readTag(c)
	if err != nil {
		return CharacterData{}, err
	}
	raw, err := c.take(int(tag.dataByteSize))
	if err != nil {
		return CharacterData{}, err
	}

	switch tag.dataType {
	case DataTypeUInt16:
		if len(raw)%2 != 0 {
			return CharacterData{}, newParseError(ErrUnexpectedSubelement, off,
				"UInt16 character payload length must be even")
		}
		units := make([]uint16, len(raw)/2)
		for i := range units {
			units[i] = c.endian.Uint16(raw[i*2 : i*2+2])
		}
		if len(units) != cellCount {
			return CharacterData{}, newParseError(ErrMismatch, off,
				"character cell count disagrees with UInt16 payload")
		}
		return CharacterData{IsUnicode: false, NonUnicode: units}, nil

	case DataTypeUtf8:
		if !utf8.Valid(raw) {
			return CharacterData{}, newParseError(ErrBadEncoding, off, "invalid UTF-8 in character payload")
		}
		s := string(raw)
		if utf8.RuneCountInString(s) != cellCount {
			return CharacterData{}, newParseError(ErrMismatch, off,
				"character cell count disagrees with UTF-8 scalar count")
		}
		return CharacterData{IsUnicode: true, Unicode: s}, nil

	case DataTypeUtf16:
		if len(raw)%2 != 0 {
			return CharacterData{}, newParseError(ErrUnexpectedSubelement, off,
				"UTF-16 character payload length must be even")
		}
		units := make([]uint16, len(raw)/2)
		for i := range units {
			units[i] = c.endian.Uint16(raw[i*2 : i*2+2])
		}
		decoded, ok := decodeUTF16Strict(units)
		if !ok {
			return CharacterData{}, newParseError(ErrBadEncoding, off,
				"unpaired UTF-16 surrogate in character payload")
		}
		if len(decoded) != cellCount {
			return CharacterData{}, newParseError(ErrMismatch, off,
				"character cell count disagrees with UTF-16 code point count")
		}
		return CharacterData{IsUnicode: true, Unicode: string(decoded)}, nil

	case DataTypeUtf32:
		if len(raw)%4 != 0 {
			return CharacterData{}, newParseError(ErrUnexpectedSubelement, off,
				"UTF-32 character payload length must be a multiple of 4")
		}
		n := len(raw) / 4
		if n != cellCount {
			return CharacterData{}, newParseError(ErrMismatch, off,
				"character cell count disagrees with UTF-32 payload")
		}
		runes := make([]rune, n)
		for i := 0; i < n; i++ {
			v := c.endian.Uint32(raw[i*4 : i*4+4])
			if !isValidScalarValue(v) {
				return CharacterData{}, newParseError(ErrBadEncoding, off,
					"UTF-32 code point is not a valid Unicode scalar value")
			}
			runes[i] = rune(v)
		}
		return CharacterData{IsUnicode: true, Unicode: string(runes)}, nil

	default:
		return CharacterData{}, newParseError(ErrUnexpectedSubelement, off,
			"character subelement has unsupported tag type "+tag.dataType.String())
	}
}

func readCharacterMatrix(c *cursor, header ArrayHeader) (*Character, error) {
	cellCount := header.Dimensions.Count()
	real, err := readCharacterData(c, cellCount)
	if err != nil {
		return nil, err
	}

	var imag *CharacterData
	if header.Flags.Complex {
		im, err := readCharacterData(c, cellCount)
		if err != nil {
			return nil, err
		}
		imag = &im
	}

	return &Character{Header: header, RealPart: real, ImagPart: imag}, nil
}

// decodeUTF16Strict mirrors the original_source parser's DataType::Utf16
// arm (char::decode_utf16), which decodes each code unit individually and
// fails the whole element on the first unpaired surrogate. unicode/utf16's
// own Decode silently substitutes U+FFFD for an unpaired surrogate, which
// would let malformed input through under a replacement character that
// still satisfies the cell-count check -- so surrogate pairing is walked by
// hand here instead of delegating to it.
func decodeUTF16Strict(units []uint16) ([]rune, bool) {
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if !utf16.IsSurrogate(u) {
			runes = append(runes, u)
			continue
		}
		if u >= 0xDC00 {
			return nil, false // unpaired low surrogate
		}
		if i+1 >= len(units) {
			return nil, false // high surrogate with no following unit
		}
		next := rune(units[i+1])
		r := utf16.DecodeRune(u, next)
		if r == utf8.RuneError {
			return nil, false // high surrogate not followed by a low surrogate
		}
		runes = append(runes, r)
		i++
	}
	return runes, true
}

func isValidScalarValue(v uint32) bool {
	if v > 0x10FFFF {
		return false
	}
	if v >= 0xD800 && v <= 0xDFFF {
		return false
	}
	return true
}
