package validate

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/alma/pkg/watch"
)

// RequiredPaths returns a validator that rejects candidates missing any of
// the given gjson paths (e.g. "server.host", "limits.0"). The candidate is
// inspected through its JSON form, so it must be JSON-encodable. Useful
// for config-tracking variables where a partial document must never be
// accepted.
func RequiredPaths(paths ...string) watch.Validator {
	return watch.ValidatorFunc(func(value interface{}) error {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("%w: value is not JSON-encodable: %v", ErrRejected, err)
		}
		for _, p := range paths {
			if !gjson.GetBytes(data, p).Exists() {
				return fmt.Errorf("%w: %s", ErrMissingPath, p)
			}
		}
		return nil
	})
}
