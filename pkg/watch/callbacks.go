package watch

// Validator inspects a candidate value before it is accepted. Returning a
// non-nil error rejects the mutation and leaves the variable unchanged;
// the error becomes the Cause of the resulting *ValidationError.
//
// Validators run in registration order while the variable's lock is held,
// so they must not call back into the variable.
type Validator interface {
	Validate(value interface{}) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(value interface{}) error

// Validate calls f(value).
func (f ValidatorFunc) Validate(value interface{}) error {
	return f(value)
}

// Listener observes accepted mutations. Notify runs after the change has
// been committed to history; a non-nil error surfaces to the mutating
// caller but never undoes the committed change. Each listener is invoked
// exactly once per accepted mutation, in registration order, and sees
// mutations in commit order.
//
// Notify is invoked while the variable's lock is held. Listeners must not
// call mutating or reading methods on the variable; everything a listener
// normally needs is in the ChangeRecord, and Name and ID are safe to call.
type Listener interface {
	Notify(v *Var, rec ChangeRecord) error
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(v *Var, rec ChangeRecord) error

// Notify calls f(v, rec).
func (f ListenerFunc) Notify(v *Var, rec ChangeRecord) error {
	return f(v, rec)
}
