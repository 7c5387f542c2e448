package stockfolio

import "sync"

// Listener is called after the portfolio's transaction log has changed.
// Listeners run synchronously in registration order on the mutating
// goroutine; a slow listener delays the mutation's return.
type Listener func()

// Subscription identifies a registered listener so it can be removed.
type Subscription struct {
	id int
}

// listenerRegistry keeps listeners in registration order.
type listenerRegistry struct {
	mu      sync.Mutex
	nextID  int
	entries []listenerEntry
}

type listenerEntry struct {
	id int
	fn Listener
}

func (r *listenerRegistry) subscribe(fn Listener) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries = append(r.entries, listenerEntry{id: r.nextID, fn: fn})
	return &Subscription{id: r.nextID}
}

func (r *listenerRegistry) unsubscribe(s *Subscription) {
	if s == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == s.id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// notify invokes listeners in registration order. The listener list is
// snapshotted first so a listener may subscribe or unsubscribe reentrantly.
func (r *listenerRegistry) notify() {
	r.mu.Lock()
	snapshot := make([]listenerEntry, len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()
	for _, e := range snapshot {
		e.fn()
	}
}
