package watch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/alma/pkg/clone"
)

// defaultClone is the deep-copy function used when deep-copy mode is on
// and no custom clone function was supplied.
var defaultClone = clone.Value

// Var is a watched variable. It owns one value, the append-only history of
// every accepted mutation, the validator and listener pipelines, and the
// frozen gate. All methods are safe for concurrent use.
//
// Mutations are serialized: at most one Set/Rollback/Reset is in flight at
// a time per variable, and reads never observe a partial append.
type Var struct {
	name  string
	id    string
	clone func(interface{}) interface{}

	mu         sync.RWMutex
	frozen     bool
	validators []Validator
	listeners  []Listener
	history    []ChangeRecord
}

// New creates a watched variable holding initial. The initial value is
// recorded as history index 0 immediately and unconditionally: it is the
// origin, not a "set", so no validator or listener runs against it.
// Deep-copy mode is enabled by default.
func New(name string, initial interface{}, opts ...Option) *Var {
	v := &Var{
		name:  name,
		id:    uuid.NewString(),
		clone: defaultClone,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.history = append(v.history, ChangeRecord{
		Index:     0,
		Value:     v.snapshot(initial),
		Timestamp: time.Now().UTC(),
	})
	return v
}

// Name returns the identifier the variable was created with. The core
// treats it as opaque; the registry layer uses it as the lookup key.
func (v *Var) Name() string {
	return v.name
}

// ID returns a unique identifier for this variable instance. Two variables
// registered under the same name (after an overwrite) have distinct IDs.
func (v *Var) ID() string {
	return v.id
}

// Get returns the current value. In deep-copy mode the returned value is a
// clone, so callers cannot mutate internally stored state; otherwise the
// stored reference is returned as-is.
func (v *Var) Get() interface{} {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot(v.history[len(v.history)-1].Value)
}

// Set updates the current value and appends a ChangeRecord.
//
// The value passes through every registered validator in order; any
// rejection aborts with *ValidationError and leaves state unchanged. On a
// frozen variable Set fails with *FrozenError. After the record is
// committed, every listener is notified in order; listener errors are
// joined and returned to the caller, but the committed change stands.
func (v *Var) Set(value interface{}) error {
	return v.SetLabeled(value, "")
}

// SetLabeled is Set with a caller-supplied annotation attached to the new
// record. Labels carry no uniqueness constraint.
func (v *Var) SetLabeled(value interface{}, label string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.commit("set", value, label)
}

// Rollback restores the value recorded at index by appending a new record;
// history is never rewound. The restored value goes through the same
// validator, clone, and listener pipeline as Set, so a rollback can itself
// be rejected and is audit-logged like any other mutation.
//
// Fails with *OutOfRangeError if index is outside [0, len(history)-1] and
// with *FrozenError if the variable is frozen.
func (v *Var) Rollback(index int) error {
	return v.RollbackLabeled(index, "")
}

// RollbackLabeled is Rollback with an annotation attached to the new
// record.
func (v *Var) RollbackLabeled(index int, label string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.frozen {
		return &FrozenError{Variable: v.name, Op: "rollback"}
	}
	if index < 0 || index >= len(v.history) {
		return &OutOfRangeError{Variable: v.name, Index: index, Max: len(v.history) - 1}
	}
	return v.commit("rollback", v.history[index].Value, label)
}

// Reset restores the initial value. Shorthand for Rollback(0).
func (v *Var) Reset() error {
	return v.Rollback(0)
}

// commit runs the mutation pipeline. The caller must hold the write lock.
func (v *Var) commit(op string, value interface{}, label string) error {
	if v.frozen {
		return &FrozenError{Variable: v.name, Op: op}
	}
	for _, val := range v.validators {
		if err := val.Validate(value); err != nil {
			return &ValidationError{Variable: v.name, Value: value, Cause: err}
		}
	}
	// Timestamps must be non-decreasing across consecutive records even if
	// the wall clock steps backwards.
	ts := time.Now().UTC()
	if last := v.history[len(v.history)-1].Timestamp; ts.Before(last) {
		ts = last
	}
	rec := ChangeRecord{
		Index:     len(v.history),
		Value:     v.snapshot(value),
		Timestamp: ts,
		Label:     label,
	}
	v.history = append(v.history, rec)

	// The mutation is committed. Every listener still runs exactly once;
	// their errors surface to the caller but never undo the append.
	var errs []error
	for _, l := range v.listeners {
		if err := l.Notify(v, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// History returns a copy of the full change history, ordered by index.
// The returned slice is the caller's to keep; mutating it does not affect
// the variable.
func (v *Var) History() []ChangeRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]ChangeRecord, len(v.history))
	copy(out, v.history)
	return out
}

// LastChange returns the most recent ChangeRecord. History is never empty
// by construction, so LastChange always succeeds.
func (v *Var) LastChange() ChangeRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.history[len(v.history)-1]
}

// Len returns the number of history records. Always at least 1.
func (v *Var) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.history)
}

// Diff returns one entry per consecutive pair of history records, each
// reporting the previous value, the new value, and the elapsed time in
// milliseconds. The result has length Len()-1; it is empty when only the
// initial record exists.
func (v *Var) Diff() []DiffEntry {
	records := v.History()
	diffs := make([]DiffEntry, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		prev, curr := records[i-1], records[i]
		diffs = append(diffs, DiffEntry{
			FromIndex: prev.Index,
			ToIndex:   curr.Index,
			FromValue: prev.Value,
			ToValue:   curr.Value,
			ElapsedMS: float64(curr.Timestamp.Sub(prev.Timestamp)) / float64(time.Millisecond),
		})
	}
	return diffs
}

// Freeze blocks Set, Rollback, and Reset until Thaw is called. Freezing is
// idempotent and does not clear history, validators, or listeners; Get,
// History, and Diff remain available while frozen.
func (v *Var) Freeze() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frozen = true
}

// Thaw re-enables mutations after a Freeze. Idempotent.
func (v *Var) Thaw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frozen = false
}

// IsFrozen reports whether the variable currently rejects mutations.
func (v *Var) IsFrozen() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.frozen
}

// AddValidator appends fn to the validator pipeline. It takes effect for
// subsequent mutations only, never retroactively.
func (v *Var) AddValidator(fn Validator) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.validators = append(v.validators, fn)
}

// AddListener appends fn to the listener pipeline. It takes effect for
// subsequent mutations only.
func (v *Var) AddListener(fn Listener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// String returns a compact description of the variable's current state.
func (v *Var) String() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	frozenTag := ""
	if v.frozen {
		frozenTag = " [frozen]"
	}
	return fmt.Sprintf("Var(name=%q, value=%v, history=%d%s)",
		v.name, v.history[len(v.history)-1].Value, len(v.history), frozenTag)
}

// snapshot applies the clone function when deep-copy mode is on.
func (v *Var) snapshot(value interface{}) interface{} {
	if v.clone == nil {
		return value
	}
	return v.clone(value)
}
