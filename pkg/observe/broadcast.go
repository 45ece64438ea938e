// Package observe provides ready-made Listener implementations for the
// watch package: channel-based change broadcasting, structured logging,
// and Prometheus metrics. None of them can fail a mutation; they only
// observe committed changes.
package observe

import (
	"sync"

	"github.com/dshills/alma/pkg/watch"
)

// ChangeEvent is what subscribers receive for every committed mutation.
type ChangeEvent struct {
	// Variable is the name of the variable that changed.
	Variable string
	// VarID identifies the variable instance, distinguishing two
	// registrations under the same name.
	VarID string
	// Record is the committed change.
	Record watch.ChangeRecord
}

// EventFilter defines criteria for filtering change events.
type EventFilter struct {
	// Variables restricts delivery to these variable names (nil/empty means all).
	Variables []string
	// Labels restricts delivery to records carrying one of these labels
	// (nil/empty means all).
	Labels []string
}

// Matches returns true if the event satisfies the filter criteria.
func (f *EventFilter) Matches(ev ChangeEvent) bool {
	if len(f.Variables) > 0 {
		matched := false
		for _, name := range f.Variables {
			if ev.Variable == name {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Labels) > 0 {
		matched := false
		for _, label := range f.Labels {
			if ev.Record.Label == label {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// subscription represents a single event subscriber.
type subscription struct {
	ch     chan ChangeEvent
	filter *EventFilter // nil means no filtering
}

// Broadcaster fans committed changes out to any number of subscribers. It
// implements watch.Listener, so one Broadcaster can be attached to many
// variables. Delivery is non-blocking: a subscriber that falls behind its
// channel buffer drops events rather than stalling mutations.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers []*subscription
	closed      bool
}

// subscriberBuffer sizes each subscription channel. Large enough to absorb
// bursts of mutations without dropping.
const subscriberBuffer = 200

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make([]*subscription, 0),
	}
}

// Subscribe returns a channel that receives every change event.
func (b *Broadcaster) Subscribe() <-chan ChangeEvent {
	return b.subscribe(nil)
}

// SubscribeFiltered returns a channel that receives only events matching
// the filter.
func (b *Broadcaster) SubscribeFiltered(filter EventFilter) <-chan ChangeEvent {
	return b.subscribe(&filter)
}

func (b *Broadcaster) subscribe(filter *EventFilter) <-chan ChangeEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		// A closed broadcaster hands out an already-closed channel
		ch := make(chan ChangeEvent)
		close(ch)
		return ch
	}

	ch := make(chan ChangeEvent, subscriberBuffer)
	b.subscribers = append(b.subscribers, &subscription{ch: ch, filter: filter})
	return ch
}

// Unsubscribe closes and removes a subscription obtained from Subscribe or
// SubscribeFiltered.
func (b *Broadcaster) Unsubscribe(ch <-chan ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub.ch == ch {
			close(sub.ch)
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			break
		}
	}
}

// Notify implements watch.Listener. It never returns an error; slow
// subscribers drop events instead of failing the mutation.
func (b *Broadcaster) Notify(v *watch.Var, rec watch.ChangeRecord) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	ev := ChangeEvent{Variable: v.Name(), VarID: v.ID(), Record: rec}
	for _, sub := range b.subscribers {
		if sub.filter != nil && !sub.filter.Matches(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
			// Event sent successfully
		default:
			// Channel buffer full, drop event to prevent blocking
		}
	}
	return nil
}

// Close closes all subscriber channels. Further Notify calls are no-ops
// and further Subscribe calls return closed channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, sub := range b.subscribers {
		close(sub.ch)
	}
	b.subscribers = nil
}
