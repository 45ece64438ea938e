package watch

import (
	"fmt"
	"time"
)

// ChangeRecord is an immutable snapshot of a single accepted mutation.
// Record 0 always holds the value the variable was created with.
type ChangeRecord struct {
	// Index is the position in the history log (0 = initial value).
	// Indices are contiguous and strictly increasing.
	Index int `json:"index"`

	// Value is the stored value at this point (a private copy when
	// deep-copy mode is enabled).
	Value interface{} `json:"value"`

	// Timestamp records when the change was accepted, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// Label is an optional caller-supplied annotation. Empty means none.
	Label string `json:"label,omitempty"`
}

// String returns a compact human-readable form of the record.
func (r ChangeRecord) String() string {
	tag := ""
	if r.Label != "" {
		tag = fmt.Sprintf(" [%s]", r.Label)
	}
	return fmt.Sprintf("ChangeRecord(index=%d, value=%v, at=%s%s)",
		r.Index, r.Value, r.Timestamp.Format(time.RFC3339Nano), tag)
}

// DiffEntry describes the transition between two consecutive history
// records.
type DiffEntry struct {
	// FromIndex is the index of the earlier record.
	FromIndex int `json:"from_index"`

	// ToIndex is the index of the later record.
	ToIndex int `json:"to_index"`

	// FromValue is the value before the transition.
	FromValue interface{} `json:"from_value"`

	// ToValue is the value after the transition.
	ToValue interface{} `json:"to_value"`

	// ElapsedMS is the wall-clock time between the two records in
	// milliseconds. Never negative.
	ElapsedMS float64 `json:"elapsed_ms"`
}
