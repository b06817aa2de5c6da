package execution

import (
	language "github.com/SammoMichael/graphstep/internal/language"
)

// MergedField is the set of syntactic field nodes that collapsed into one
// execution field through selection merging. A query may request the same
// response key several times with different sub-selections; all of those
// occurrences resolve as a single field with one entry in the response.
//
// The tracker uses a merged field only for its response key and identity; it
// never interprets the selection sets inside.
type MergedField struct {
	fields []*language.Field
}

// NewMergedField creates a MergedField from one or more field nodes. The
// slice is copied.
func NewMergedField(fields ...*language.Field) MergedField {
	if len(fields) == 0 {
		invariantf("a merged field requires at least one field node")
	}
	copied := make([]*language.Field, len(fields))
	copy(copied, fields)
	return MergedField{fields: copied}
}

// Defined reports whether the merged field holds any field node. The zero
// value is undefined and marks records without an associated field (the
// operation root).
func (m MergedField) Defined() bool { return len(m.fields) > 0 }

// ResultKey returns the key under which this field appears in the response:
// the alias when one was given, the field name otherwise.
func (m MergedField) ResultKey() string {
	f := m.fields[0]
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Name returns the field name shared by all merged occurrences.
func (m MergedField) Name() string { return m.fields[0].Name }

// SingleField returns the first of the merged field nodes.
func (m MergedField) SingleField() *language.Field { return m.fields[0] }

// Fields returns a copy of all merged field nodes.
func (m MergedField) Fields() []*language.Field {
	out := make([]*language.Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Size returns the number of merged occurrences.
func (m MergedField) Size() int { return len(m.fields) }
