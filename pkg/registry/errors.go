package registry

import "fmt"

// DuplicateNameError reports an attempt to register a variable under a
// name that is already taken, without requesting a replacement.
type DuplicateNameError struct {
	// Name is the colliding registration name.
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("registry: variable %q is already registered (use Replace to overwrite)", e.Name)
}

// NotFoundError reports a lookup of a name with no registered variable.
type NotFoundError struct {
	// Name is the unknown registration name.
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: no variable named %q is registered", e.Name)
}
