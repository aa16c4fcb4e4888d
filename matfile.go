// Package matfile decodes MATLAB level-5 .mat container files (MAT-file
// format, Level 5) into a typed, in-memory tree: dense numeric arrays (real
// or complex), compressed-sparse-column sparse arrays, character arrays,
// and nested structure arrays whose fields are themselves arrays.
//
// The package only reads; see spec.md's Non-goals for what is deliberately
// out of scope (encoding, linear algebra, streaming, cell/object arrays).
package matfile

// ParseAll is the package's single entry point: it decodes a complete
// container from a borrowed byte slice and returns its header plus every
// top-level element, in file order (spec.md §4.2 "Top-level driver").
//
// No partial results are returned on failure; the returned error is always
// a *ParseError.
func ParseAll(data []byte) (Header, []Element, error) {
	c := newCursor(data, nil)
	header, err := parseHeader(c)
	if err != nil {
		return Header{}, nil, err
	}
	c.endian = header.Endian

	var elements []Element
	for !c.atEnd() {
		el, err := readElement(c, "")
		if err != nil {
			return Header{}, nil, err
		}
		elements = append(elements, el)
	}

	return header, elements, nil
}

// File is a convenience wrapper over ParseAll that indexes top-level
// Numeric, Sparse, Character and Structure elements by their array name,
// mirroring how MATLAB itself exposes a .mat file as a set of named
// variables.
type File struct {
	Header Header
	vars   map[string]Element
	order  []string
}

// NewFile parses data and indexes its top-level elements by name. Elements
// with no name (which should only occur for pathological files) are not
// indexed and are not addressable via GetVar.
func NewFile(data []byte) (*File, error) {
	header, elements, err := ParseAll(data)
	if err != nil {
		return nil, err
	}

	f := &File{Header: header, vars: make(map[string]Element, len(elements))}
	for _, el := range elements {
		name := elementName(el)
		if name == "" {
			continue
		}
		if _, exists := f.vars[name]; !exists {
			f.order = append(f.order, name)
		}
		f.vars[name] = el
	}
	return f, nil
}

// GetVar returns the named top-level variable, and whether it was found.
func (f *File) GetVar(name string) (Element, bool) {
	v, ok := f.vars[name]
	return v, ok
}

// VarNames returns the names of the file's top-level variables, in the
// order they were first encountered.
func (f *File) VarNames() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func elementName(el Element) string {
	switch v := el.(type) {
	case *Numeric:
		return v.Header.Name
	case *Sparse:
		return v.Header.Name
	case *Character:
		return v.Header.Name
	case *Structure:
		return v.Header.Name
	default:
		return ""
	}
}
