package validate

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dshills/alma/pkg/watch"
)

// Expression compiles src with the expr language and returns a validator
// that evaluates it against each candidate, exposed as "value". The
// expression must evaluate to a boolean; false rejects the candidate.
//
// Example:
//
//	v, err := validate.Expression("value >= 0 && value <= 100")
func Expression(src string) (watch.Validator, error) {
	program, err := expr.Compile(src,
		expr.Env(map[string]interface{}{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidExpression, src, err)
	}
	return &expressionValidator{src: src, program: program}, nil
}

// expressionValidator runs a pre-compiled expr program per candidate.
type expressionValidator struct {
	src     string
	program *vm.Program
}

// Validate implements watch.Validator.
func (e *expressionValidator) Validate(value interface{}) error {
	out, err := vm.Run(e.program, map[string]interface{}{"value": value})
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidExpression, e.src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return fmt.Errorf("%w: %q returned %T", ErrNotBoolean, e.src, out)
	}
	if !ok {
		return fmt.Errorf("%w by expression %q", ErrRejected, e.src)
	}
	return nil
}
