// Package position classifies cursor positions inside JSON documents.
//
// The analyzer runs a tolerant recursive-descent scan over the raw bytes, so
// it keeps producing useful contexts while the document is mid-edit and does
// not parse. It also answers two structural queries on the same scan: the
// byte span of the value at a path, and the member keys of the object at a
// path.
package position

// Segment is one element of a JSON path: either a member name or an array
// index. Index is -1 for member-name segments.
type Segment struct {
	Name  string
	Index int
}

// Key returns a member-name path segment.
func Key(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// Index returns an array-index path segment.
func Index(i int) Segment {
	return Segment{Index: i}
}

// IsKey reports whether the segment is a member name.
func (s Segment) IsKey() bool {
	return s.Index < 0
}

// Path addresses a location in a document, relative to the root value.
type Path []Segment

// Equal reports whether two paths address the same location.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) clone() Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	copy(c, p)
	return c
}

func (p Path) with(seg Segment) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)
	return append(c, seg)
}

// ContextKind discriminates the syntactic slot a cursor occupies.
type ContextKind int

const (
	// ContextUnknown means the position could not be classified.
	ContextUnknown ContextKind = iota
	// ContextKey means the cursor is inside a member key string. The path
	// includes the key under the cursor, so consumers resolve the field
	// itself, not its parent object.
	ContextKey
	// ContextKeyStart means a new member key may begin at the cursor.
	ContextKeyStart
	// ContextValue means the cursor is inside or touching a value token.
	ContextValue
	// ContextValueStart means a value is expected at the cursor but absent.
	ContextValueStart
)

func (k ContextKind) String() string {
	switch k {
	case ContextKey:
		return "Key"
	case ContextKeyStart:
		return "KeyStart"
	case ContextValue:
		return "Value"
	case ContextValueStart:
		return "ValueStart"
	default:
		return "Unknown"
	}
}

// Context is the classification of a cursor position. For ContextKeyStart
// the path is the parent object's path; for the other non-Unknown kinds it
// is the path of the key or value under the cursor.
type Context struct {
	Kind ContextKind
	Path Path
}
