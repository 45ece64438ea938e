package validate

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dshills/alma/pkg/watch"
)

// Schema compiles a JSON Schema document and returns a validator that
// checks each candidate value against it. The candidate is converted
// through its JSON form, so it must be JSON-encodable.
func Schema(schema []byte) (watch.Validator, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("%w: empty schema", ErrInvalidSchema)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return watch.ValidatorFunc(func(value interface{}) error {
		result, err := compiled.Validate(gojsonschema.NewGoLoader(value))
		if err != nil {
			return fmt.Errorf("schema validation error: %w", err)
		}
		if !result.Valid() {
			// Collect all validation errors into one reason
			var msg string
			for i, desc := range result.Errors() {
				if i > 0 {
					msg += "; "
				}
				msg += fmt.Sprintf("%s: %s", desc.Field(), desc.Description())
			}
			return fmt.Errorf("%w by schema: %s", ErrRejected, msg)
		}
		return nil
	}), nil
}
