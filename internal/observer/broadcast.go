package observer

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send after the broadcaster has been closed.
var ErrClosed = errors.New("broadcaster closed")

// Broadcaster queues events to every subscribed Stream. Each stream has an
// unbounded queue, so Send never waits for a slow reader, and each stream
// sees events in the order they were sent.
type Broadcaster[E any] struct {
	mu      sync.Mutex
	streams map[*Stream[E]]struct{}
	closed  bool
}

// NewBroadcaster creates a broadcaster without subscribers.
func NewBroadcaster[E any]() *Broadcaster[E] {
	return &Broadcaster[E]{
		streams: make(map[*Stream[E]]struct{}),
	}
}

// Subscribe returns a new stream that receives every event sent from now on.
// Subscribing to a closed broadcaster yields an already finished stream.
func (b *Broadcaster[E]) Subscribe() *Stream[E] {
	s := &Stream[E]{
		ready: make(chan struct{}, 1),
		out:   make(chan E),
		done:  make(chan struct{}),
	}
	s.unsubscribe = func() { b.remove(s) }

	b.mu.Lock()
	if b.closed {
		s.ended = true
	} else {
		b.streams[s] = struct{}{}
	}
	b.mu.Unlock()

	go s.pump()
	return s
}

func (b *Broadcaster[E]) remove(s *Stream[E]) {
	b.mu.Lock()
	delete(b.streams, s)
	b.mu.Unlock()
}

// Send queues event to every subscriber and returns once it is queued.
func (b *Broadcaster[E]) Send(ctx context.Context, event E) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	for s := range b.streams {
		s.push(event)
	}
	return nil
}

// Close ends all streams. Events already queued are still delivered before
// the stream channels close.
func (b *Broadcaster[E]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for s := range b.streams {
		s.end()
	}
	b.streams = nil
}

// Subscribers returns the number of open streams.
func (b *Broadcaster[E]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.streams)
}

// Stream is a cancellable subscription to a Broadcaster.
type Stream[E any] struct {
	mu    sync.Mutex
	queue []E
	ended bool

	ready chan struct{}
	out   chan E
	done  chan struct{}

	once        sync.Once
	unsubscribe func()
}

// C returns the channel events are delivered on. It is closed once the
// broadcaster is closed and the queue is drained, or when the stream is closed.
func (s *Stream[E]) C() <-chan E {
	return s.out
}

// Close unsubscribes the stream and drops any queued events.
func (s *Stream[E]) Close() {
	s.once.Do(func() {
		s.unsubscribe()
		close(s.done)
	})
}

func (s *Stream[E]) push(event E) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, event)
	s.mu.Unlock()
	s.wake()
}

func (s *Stream[E]) end() {
	s.mu.Lock()
	s.ended = true
	s.mu.Unlock()
	s.wake()
}

func (s *Stream[E]) wake() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func (s *Stream[E]) pump() {
	defer close(s.out)

	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		ended := s.ended
		s.mu.Unlock()

		for _, event := range batch {
			select {
			case s.out <- event:
			case <-s.done:
				return
			}
		}
		if len(batch) > 0 {
			continue
		}
		if ended {
			return
		}

		select {
		case <-s.ready:
		case <-s.done:
			return
		}
	}
}

// Forward sends every event emitted by src to b. Send errors after b is
// closed are dropped.
func Forward[E any](src Observable[E], b *Broadcaster[E]) {
	src.Observe(func(event E) {
		_ = b.Send(context.Background(), event)
	})
}
