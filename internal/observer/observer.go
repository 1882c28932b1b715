package observer

import "sync"

// Observable is implemented by anything listeners can be attached to.
type Observable[E any] interface {
	Observe(fn func(E))
}

type listener[E any] struct {
	id uint64
	fn func(E)
}

// Observers fans an event out to every registered listener, synchronously
// and in registration order. The zero value is ready to use.
//
// A listener that panics is not isolated: the panic propagates to the caller
// of Notify and the remaining listeners are skipped.
type Observers[E any] struct {
	mu        sync.Mutex
	listeners []listener[E]
	nextID    uint64
}

// Observe registers fn for the lifetime of the Observers.
func (o *Observers[E]) Observe(fn func(E)) {
	o.Subscribe(fn)
}

// Subscribe registers fn and returns a handle that removes it again.
func (o *Observers[E]) Subscribe(fn func(E)) *Subscription {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.listeners = append(o.listeners, listener[E]{id: id, fn: fn})
	o.mu.Unlock()

	return newSubscription(func() { o.remove(id) })
}

func (o *Observers[E]) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, l := range o.listeners {
		if l.id == id {
			o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
			return
		}
	}
}

// Notify calls every listener registered at the time of the call with event.
// No lock is held while listeners run, so they may re-enter the emitter.
func (o *Observers[E]) Notify(event E) {
	o.mu.Lock()
	snapshot := make([]listener[E], len(o.listeners))
	copy(snapshot, o.listeners)
	o.mu.Unlock()

	for _, l := range snapshot {
		l.fn(event)
	}
}

// Len returns the number of registered listeners.
func (o *Observers[E]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe detaches the listener. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
