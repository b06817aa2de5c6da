package execution

import "fmt"

// InvariantViolation reports a broken caller contract inside the step tracker.
// It is a programming-error class: never retried, never recovered at this
// layer. Callers observing one should treat it as a bug in the calling code,
// not as a user-facing query error.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}

// invariantf panics with an InvariantViolation carrying the formatted reason.
func invariantf(format string, args ...any) {
	panic(&InvariantViolation{Reason: fmt.Sprintf(format, args...)})
}
