package execution

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Segment is one step in a node's route from the response root: either a
// field result key or a list index.
type Segment struct {
	name    string
	index   int
	isIndex bool
}

// FieldSegment returns a segment addressing a field by its result key.
func FieldSegment(name string) Segment { return Segment{name: name} }

// IndexSegment returns a segment addressing one element of a list.
func IndexSegment(index int) Segment { return Segment{index: index, isIndex: true} }

// IsIndex reports whether the segment addresses a list element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Name returns the field result key for a field segment.
func (s Segment) Name() string { return s.name }

// Index returns the list index for an index segment.
func (s Segment) Index() int { return s.index }

func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.name
}

// ResultPath is the immutable route from the response root to one execution
// step. Append operations copy; existing paths are never mutated, so paths can
// be shared across concurrent execution branches.
type ResultPath struct {
	segments []Segment
}

// RootPath returns the empty path of the operation root.
func RootPath() ResultPath { return ResultPath{} }

// AppendField returns a new path extended with a field segment.
func (p ResultPath) AppendField(name string) ResultPath {
	return p.append(FieldSegment(name))
}

// AppendIndex returns a new path extended with a list index segment.
func (p ResultPath) AppendIndex(index int) ResultPath {
	return p.append(IndexSegment(index))
}

func (p ResultPath) append(seg Segment) ResultPath {
	segments := make([]Segment, len(p.segments)+1)
	copy(segments, p.segments)
	segments[len(p.segments)] = seg
	return ResultPath{segments: segments}
}

// Len returns the number of segments.
func (p ResultPath) Len() int { return len(p.segments) }

// IsRoot reports whether the path is empty.
func (p ResultPath) IsRoot() bool { return len(p.segments) == 0 }

// IsListElement reports whether the path addresses an element inside a list,
// i.e. its last segment is an index.
func (p ResultPath) IsListElement() bool {
	return len(p.segments) > 0 && p.segments[len(p.segments)-1].isIndex
}

// Segments returns a copy of the path segments in root-to-leaf order.
func (p ResultPath) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// IsZero reports whether the path is empty. Satisfies the encoding/json
// omitzero contract so root-level errors omit their path member.
func (p ResultPath) IsZero() bool { return len(p.segments) == 0 }

// Equal reports segment-wise equality. Used by go-cmp.
func (p ResultPath) Equal(o ResultPath) bool {
	if len(p.segments) != len(o.segments) {
		return false
	}
	for i, seg := range p.segments {
		if seg != o.segments[i] {
			return false
		}
	}
	return true
}

// String renders the path as e.g. pets[0].name. The root path renders empty.
func (p ResultPath) String() string {
	var b strings.Builder
	for i, seg := range p.segments {
		if i > 0 && !seg.isIndex {
			b.WriteString(".")
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// MarshalJSON renders the path as a JSON array of keys and indices, the form
// carried in the "path" member of located GraphQL errors.
func (p ResultPath) MarshalJSON() ([]byte, error) {
	out := make([]any, len(p.segments))
	for i, seg := range p.segments {
		if seg.isIndex {
			out[i] = seg.index
		} else {
			out[i] = seg.name
		}
	}
	return json.Marshal(out)
}
