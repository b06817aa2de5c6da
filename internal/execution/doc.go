// Package execution models the execution-time type hierarchy of a GraphQL
// operation as a chain of immutable StepInfo records.
//
// Static field types alone cannot answer the questions value completion asks:
// whether a null here must bubble to an ancestor, which wrapper to remove for
// a list element, or what a field's type became after an interface resolved
// to a concrete object. A StepInfo captures the effective type at one step
// together with the field, its defining type, its argument values and the
// path from the operation root, and links to the parent step so the whole
// ancestor chain is reachable from any record.
//
// Records are derived, never mutated: Transform and the builder produce new
// records, ChangeTypeWithPreservedNonNull narrows abstract types without
// losing the non-null contract, and NewStepForListElement descends one list
// level per element. Broken caller contracts panic with InvariantViolation.
package execution
