package watch

import "fmt"

// ValidationError reports that a registered validator rejected a candidate
// value. The mutation was fully discarded: the variable's history and
// current value are unchanged.
type ValidationError struct {
	// Variable is the name of the variable the mutation targeted.
	Variable string
	// Value is the rejected candidate value.
	Value interface{}
	// Cause is the rejection reason returned by the validator.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("watch: validator rejected value for variable %q: %v", e.Variable, e.Cause)
}

// Unwrap returns the validator's rejection reason for errors.Is/As support.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// FrozenError reports a mutation attempted on a frozen variable. The
// variable's state is unchanged.
type FrozenError struct {
	// Variable is the name of the frozen variable.
	Variable string
	// Op is the mutating operation that was refused ("set", "rollback").
	Op string
}

// Error implements the error interface.
func (e *FrozenError) Error() string {
	return fmt.Sprintf("watch: cannot %s variable %q: variable is frozen", e.Op, e.Variable)
}

// OutOfRangeError reports a rollback index outside the valid range
// [0, Max]. The variable's state is unchanged.
type OutOfRangeError struct {
	// Variable is the name of the variable the rollback targeted.
	Variable string
	// Index is the requested history index.
	Index int
	// Max is the largest valid index at the time of the call.
	Max int
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("watch: rollback index %d out of range [0, %d] for variable %q",
		e.Index, e.Max, e.Variable)
}
