// Package watch implements the watched-variable core: a container that
// pairs a single value with an append-only, timestamped history of every
// accepted mutation.
//
// A Var is created with an initial value that becomes history record 0.
// Every accepted Set, Rollback, or Reset appends a new ChangeRecord;
// history is never truncated or rewritten, so the audit trail survives
// rollbacks. Mutations pass through a validator pipeline before acceptance
// and a listener pipeline after commit. A frozen variable rejects all
// mutations while remaining fully readable.
//
// All Var methods are safe for concurrent use by multiple goroutines.
package watch
