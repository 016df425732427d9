package binding

import "sync"

// Notifier is a subscription to disconnect events for one connection.
//
// Every event increments Count and runs the optional callback. C delivers a
// coalesced wake-up: several events between two receives show up as one.
// After Close, events are ignored.
type Notifier struct {
	mu     sync.Mutex
	fn     func()
	ch     chan struct{}
	count  uint64
	closed bool
}

// NewNotifier returns a Notifier that calls fn (which may be nil) on every
// event.
func NewNotifier(fn func()) *Notifier {
	return &Notifier{fn: fn, ch: make(chan struct{}, 1)}
}

// Notify records one event. It is the function handed to the native side.
func (n *Notifier) Notify() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.count++
	fn := n.fn
	select {
	case n.ch <- struct{}{}:
	default:
	}
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// C wakes up after one or more events.
func (n *Notifier) C() <-chan struct{} { return n.ch }

// Count returns how many events were delivered.
func (n *Notifier) Count() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

// Close releases the subscription. It is safe to call more than once.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
}
