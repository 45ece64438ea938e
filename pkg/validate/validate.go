// Package validate provides ready-made Validator implementations for the
// watch package: boolean expressions, JSON Schema documents, coarse type
// checks, and required-path checks. All constructors compile or check
// their inputs up front so a bad specification fails at registration time
// rather than on the first mutation.
package validate

import (
	"errors"

	"github.com/dshills/alma/pkg/watch"
)

// Sentinel errors shared across all validator constructors.
var (
	// ErrInvalidExpression reports an expression that failed to compile or
	// evaluate.
	ErrInvalidExpression = errors.New("invalid validator expression")
	// ErrNotBoolean reports an expression that evaluated to a non-boolean.
	ErrNotBoolean = errors.New("validator expression must evaluate to a boolean")
	// ErrRejected is wrapped by every rejection these validators produce.
	ErrRejected = errors.New("value rejected")
	// ErrInvalidSchema reports a JSON Schema that failed to compile.
	ErrInvalidSchema = errors.New("invalid JSON schema")
	// ErrUnknownType reports an unrecognized type name passed to TypeOf.
	ErrUnknownType = errors.New("unknown value type")
	// ErrMissingPath reports a required JSON path absent from a candidate.
	ErrMissingPath = errors.New("required path missing")
)

// All combines validators into one that runs each in order and returns the
// first rejection.
func All(vs ...watch.Validator) watch.Validator {
	return watch.ValidatorFunc(func(value interface{}) error {
		for _, v := range vs {
			if err := v.Validate(value); err != nil {
				return err
			}
		}
		return nil
	})
}
