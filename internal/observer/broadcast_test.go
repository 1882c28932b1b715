package observer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func collect[E any](t *testing.T, s *Stream[E]) []E {
	t.Helper()

	var events []E
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-s.C():
			if !ok {
				return events
			}
			events = append(events, e)
		case <-timeout:
			t.Fatal("Timed out waiting for stream to close")
			return nil
		}
	}
}

func TestBroadcastPreservesOrder(t *testing.T) {
	b := NewBroadcaster[int]()
	first := b.Subscribe()
	second := b.Subscribe()
	ctx := context.Background()

	for i := 1; i <= 100; i++ {
		if err := b.Send(ctx, i); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	}
	b.Close()

	expected := make([]int, 100)
	for i := range expected {
		expected[i] = i + 1
	}

	if got := collect(t, first); !reflect.DeepEqual(got, expected) {
		t.Errorf("First stream: expected %d ordered events, got %v", len(expected), got)
	}
	if got := collect(t, second); !reflect.DeepEqual(got, expected) {
		t.Errorf("Second stream: expected %d ordered events, got %v", len(expected), got)
	}
}

func TestBroadcastNoEventsBeforeSubscribe(t *testing.T) {
	b := NewBroadcaster[string]()
	ctx := context.Background()

	_ = b.Send(ctx, "early")
	s := b.Subscribe()
	_ = b.Send(ctx, "late")
	b.Close()

	if got := collect(t, s); !reflect.DeepEqual(got, []string{"late"}) {
		t.Errorf("Expected [late], got %v", got)
	}
}

func TestBroadcastSendAfterClose(t *testing.T) {
	b := NewBroadcaster[int]()
	b.Close()
	b.Close()

	if err := b.Send(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}

	s := b.Subscribe()
	if got := collect(t, s); len(got) != 0 {
		t.Errorf("Expected no events on stream of closed broadcaster, got %v", got)
	}
}

func TestBroadcastSendCancelledContext(t *testing.T) {
	b := NewBroadcaster[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Send(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestStreamCloseUnsubscribes(t *testing.T) {
	b := NewBroadcaster[int]()
	defer b.Close()

	s := b.Subscribe()
	if b.Subscribers() != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", b.Subscribers())
	}

	s.Close()
	s.Close()

	if b.Subscribers() != 0 {
		t.Errorf("Expected 0 subscribers after close, got %d", b.Subscribers())
	}
	_ = b.Send(context.Background(), 1)
	collect(t, s)
}

func TestForward(t *testing.T) {
	var obs Observers[string]
	b := NewBroadcaster[string]()
	s := b.Subscribe()
	Forward[string](&obs, b)

	obs.Notify("guess")
	obs.Notify("select")
	b.Close()
	obs.Notify("dropped")

	if got := collect(t, s); !reflect.DeepEqual(got, []string{"guess", "select"}) {
		t.Errorf("Expected [guess select], got %v", got)
	}
}
