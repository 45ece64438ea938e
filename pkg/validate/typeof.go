package validate

import (
	"fmt"

	"github.com/dshills/alma/pkg/watch"
)

// validTypes are the coarse value types TypeOf understands.
var validTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"object":  true,
	"array":   true,
	"any":     true,
}

// TypeOf returns a validator that rejects candidates whose dynamic type
// does not match kind. Recognized kinds: string, number, boolean, object,
// array, any.
func TypeOf(kind string) (watch.Validator, error) {
	if !validTypes[kind] {
		return nil, fmt.Errorf("%w: %s (must be one of: string, number, boolean, object, array, any)", ErrUnknownType, kind)
	}
	return watch.ValidatorFunc(func(value interface{}) error {
		return checkType(kind, value)
	}), nil
}

// checkType verifies that value matches the declared kind.
func checkType(kind string, value interface{}) error {
	// "any" accepts any value, including nil
	if kind == "any" {
		return nil
	}
	if value == nil {
		return fmt.Errorf("%w: expected %s, got nil", ErrRejected, kind)
	}

	switch kind {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrRejected, value)
		}
	case "number":
		// Accept both int and float types as numbers
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			// Valid number type
		default:
			return fmt.Errorf("%w: expected number, got %T", ErrRejected, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: expected boolean, got %T", ErrRejected, value)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("%w: expected object (map), got %T", ErrRejected, value)
		}
	case "array":
		switch value.(type) {
		case []interface{}, []string, []int, []float64, []bool, []map[string]interface{}:
			// Valid array types
		default:
			return fmt.Errorf("%w: expected array (slice), got %T", ErrRejected, value)
		}
	}

	return nil
}
