// Package clone provides the deep-copy collaborator used by the watch
// package: a function producing a value independent of the original, so
// that mutating either side never affects the other.
package clone

import "github.com/mitchellh/copystructure"

// Value returns a deep copy of v. Values that cannot be copied (channels,
// functions, structs with unexported fields) are returned as-is rather
// than failing the caller; use Copy when the error matters.
func Value(v interface{}) interface{} {
	out, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return out
}

// Copy returns a deep copy of v, or an error if v contains something that
// cannot be copied.
func Copy(v interface{}) (interface{}, error) {
	return copystructure.Copy(v)
}
