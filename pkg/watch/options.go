package watch

// Option configures a Var at construction time.
type Option func(*Var)

// WithValidators registers validators that run, in the given order, before
// every mutation is accepted. The initial value is exempt.
func WithValidators(vs ...Validator) Option {
	return func(v *Var) {
		v.validators = append(v.validators, vs...)
	}
}

// WithListeners registers listeners notified, in the given order, after
// every accepted mutation. The initial value is exempt.
func WithListeners(ls ...Listener) Option {
	return func(v *Var) {
		v.listeners = append(v.listeners, ls...)
	}
}

// WithDeepCopy controls deep-copy mode (enabled by default). When
// disabled, the variable stores and returns the caller's references as-is,
// accepting that callers can mutate internally stored state. This is a
// documented trade-off for values that are expensive or impossible to
// copy.
func WithDeepCopy(enabled bool) Option {
	return func(v *Var) {
		if enabled {
			v.clone = defaultClone
		} else {
			v.clone = nil
		}
	}
}

// WithCloneFunc replaces the default deep-copy function with fn. Useful
// when the stored type has its own cheap copy semantics. Implies deep-copy
// mode.
func WithCloneFunc(fn func(interface{}) interface{}) Option {
	return func(v *Var) {
		v.clone = fn
	}
}
