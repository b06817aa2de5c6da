package execution

import (
	"fmt"

	"github.com/SammoMichael/graphstep/internal/schema"
)

// StepInfo is an immutable record of the execution-time type hierarchy at one
// step: the effective output type being completed, the field being resolved,
// the type that defines that field, the resolved argument values and the
// structural path from the operation root. Records link to their parent, so
// each one carries the full ancestor chain back to the root.
//
// StepInfo values are never mutated after construction. Every derivation
// produces a new record, which makes them safe to share across concurrent
// execution branches without synchronization.
type StepInfo struct {
	stepType     *schema.TypeRef
	fieldDef     *schema.Field
	definingType *schema.Type
	field        MergedField
	path         ResultPath
	parent       *StepInfo
	arguments    ArgumentValues
}

// StepInfoBuilder assembles a StepInfo. Obtain one from NewStepInfo or
// NewStepInfoFrom, set fields with the chained setters and call Build.
type StepInfoBuilder struct {
	stepType     *schema.TypeRef
	fieldDef     *schema.Field
	definingType *schema.Type
	field        MergedField
	path         ResultPath
	parent       *StepInfo
	arguments    ArgumentValues
}

// NewStepInfo returns an empty builder. The output type is the only field
// that must be set before Build.
func NewStepInfo() *StepInfoBuilder {
	return &StepInfoBuilder{arguments: NoArgumentValues()}
}

// NewStepInfoFrom returns a builder preloaded with every field of an existing
// record. Setters then override individual fields; the original record is
// never modified.
func NewStepInfoFrom(existing *StepInfo) *StepInfoBuilder {
	if existing == nil {
		invariantf("cannot derive a step info from nil")
	}
	return &StepInfoBuilder{
		stepType:     existing.stepType,
		fieldDef:     existing.fieldDef,
		definingType: existing.definingType,
		field:        existing.field,
		path:         existing.path,
		parent:       existing.parent,
		arguments:    existing.arguments,
	}
}

// Type sets the effective output type of the step.
func (b *StepInfoBuilder) Type(t *schema.TypeRef) *StepInfoBuilder {
	b.stepType = t
	return b
}

// FieldDefinition sets the schema field definition being resolved.
func (b *StepInfoBuilder) FieldDefinition(def *schema.Field) *StepInfoBuilder {
	b.fieldDef = def
	return b
}

// DefiningType sets the object or interface type that defines the field.
func (b *StepInfoBuilder) DefiningType(t *schema.Type) *StepInfoBuilder {
	b.definingType = t
	return b
}

// Field sets the merged field being resolved.
func (b *StepInfoBuilder) Field(field MergedField) *StepInfoBuilder {
	b.field = field
	return b
}

// Path sets the structural path from the operation root.
func (b *StepInfoBuilder) Path(path ResultPath) *StepInfoBuilder {
	b.path = path
	return b
}

// Parent sets the parent record. Nil marks the operation root.
func (b *StepInfoBuilder) Parent(parent *StepInfo) *StepInfoBuilder {
	b.parent = parent
	return b
}

// Arguments sets the resolved argument values. ArgumentValues are immutable,
// so the builder shares the value rather than copying it.
func (b *StepInfoBuilder) Arguments(args ArgumentValues) *StepInfoBuilder {
	b.arguments = args
	return b
}

// Build constructs the immutable record. It panics with an InvariantViolation
// when no output type was set: a step without a type has no meaning.
func (b *StepInfoBuilder) Build() *StepInfo {
	if b.stepType == nil {
		invariantf("a step info requires an output type")
	}
	return &StepInfo{
		stepType:     b.stepType,
		fieldDef:     b.fieldDef,
		definingType: b.definingType,
		field:        b.field,
		path:         b.path,
		parent:       b.parent,
		arguments:    b.arguments,
	}
}

// Transform derives a new record by applying fn to a builder preloaded with
// this record's fields. The receiver is left untouched.
func (s *StepInfo) Transform(fn func(*StepInfoBuilder)) *StepInfo {
	b := NewStepInfoFrom(s)
	fn(b)
	return b.Build()
}

// ChangeTypeWithPreservedNonNull derives a record whose output type is
// replaced by newType, keeping the original's outermost non-null wrapper. It
// is used when an abstract type resolves to a concrete object at runtime: the
// schema's nullability contract must survive the narrowing.
//
// newType must not itself carry a non-null wrapper; passing a wrapped type
// panics with an InvariantViolation, since silently accepting it would let
// nullability be double-applied or dropped.
func (s *StepInfo) ChangeTypeWithPreservedNonNull(newType *schema.TypeRef) *StepInfo {
	if newType == nil {
		invariantf("replacement type for step at %q must not be nil", s.path)
	}
	if newType.IsNonNull() {
		invariantf("replacement type %s for step at %q must not be non-null wrapped", newType, s.path)
	}
	replaced := newType
	if s.IsNonNullType() {
		replaced = schema.NonNullType(newType)
	}
	out := *s
	out.stepType = replaced
	return &out
}

// NewStepForListElement derives the record for one element of a list-typed
// step: the list wrapper (and its optional non-null wrapper) is removed and
// the element index is appended to the path. Field, definition, defining type
// and arguments carry over; the list step becomes the parent.
//
// Panics with an InvariantViolation when the parent's type is not a list.
func NewStepForListElement(parent *StepInfo, index int) *StepInfo {
	if parent == nil {
		invariantf("list element step requires a parent")
	}
	if !parent.IsListType() {
		invariantf("step at %q has type %s, which is not a list", parent.path, parent.stepType)
	}
	elemType := parent.stepType.UnwrapNonNull().Unwrap()
	return &StepInfo{
		stepType:     elemType,
		fieldDef:     parent.fieldDef,
		definingType: parent.definingType,
		field:        parent.field,
		path:         parent.path.AppendIndex(index),
		parent:       parent,
		arguments:    parent.arguments,
	}
}

// Type returns the effective output type at this step.
func (s *StepInfo) Type() *schema.TypeRef { return s.stepType }

// UnwrappedNonNullType returns the step's type with at most one Non-Null
// wrapper removed. A list type is returned unchanged.
func (s *StepInfo) UnwrappedNonNullType() *schema.TypeRef {
	return s.stepType.UnwrapNonNull()
}

// UnwrappedTypeName returns the name of the type underneath all list and
// non-null wrappers.
func (s *StepInfo) UnwrappedTypeName() string {
	return s.stepType.GetNamedType()
}

// IsNonNullType reports whether the step's type is non-null at the outermost
// level.
func (s *StepInfo) IsNonNullType() bool { return s.stepType.IsNonNull() }

// IsListType reports whether the step's type is a list once an outer non-null
// wrapper is discounted.
func (s *StepInfo) IsListType() bool { return s.stepType.IsList() }

// FieldDefinition returns the schema field definition, or nil at the root.
func (s *StepInfo) FieldDefinition() *schema.Field { return s.fieldDef }

// DefiningType returns the object or interface type that defines the field
// being resolved, or nil at the root.
func (s *StepInfo) DefiningType() *schema.Type { return s.definingType }

// Field returns the merged field being resolved. The zero MergedField marks
// a step without a field, such as the operation root.
func (s *StepInfo) Field() MergedField { return s.field }

// HasField reports whether the step resolves a field.
func (s *StepInfo) HasField() bool { return s.field.Defined() }

// ResultKey returns the response key of the step's field. Panics with an
// InvariantViolation when the step has no field.
func (s *StepInfo) ResultKey() string {
	if !s.field.Defined() {
		invariantf("step at %q has no associated field", s.path)
	}
	return s.field.ResultKey()
}

// Path returns the structural path from the operation root to this step.
func (s *StepInfo) Path() ResultPath { return s.path }

// Parent returns the parent record, or nil at the operation root.
func (s *StepInfo) Parent() *StepInfo { return s.parent }

// HasParent reports whether the step has a parent.
func (s *StepInfo) HasParent() bool { return s.parent != nil }

// Arguments returns the resolved argument values of the step's field.
// Explicit nulls are preserved as present entries.
func (s *StepInfo) Arguments() ArgumentValues { return s.arguments }

// Argument returns the value of one argument along with whether it was
// supplied at all.
func (s *StepInfo) Argument(name string) (any, bool) {
	return s.arguments.Lookup(name)
}

// SimplePrint renders just the effective output type, e.g. [Pet!]!.
func (s *StepInfo) SimplePrint() string {
	return schema.FormatTypeRef(s.stepType)
}

// String renders a diagnostic summary of the step.
func (s *StepInfo) String() string {
	field := "<none>"
	if s.field.Defined() {
		field = s.field.ResultKey()
	}
	return fmt.Sprintf("StepInfo{path=%q, type=%s, field=%s}", s.path.String(), s.SimplePrint(), field)
}
