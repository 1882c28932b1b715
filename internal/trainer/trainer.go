package trainer

import (
	"math/rand/v2"
	"sync"

	"codeberg.org/snonux/worttrainer/internal/observer"
	"codeberg.org/snonux/worttrainer/internal/statistic"
)

// Trainer selects items and scores guesses against the active one.
//
// The active index is stored as given and validated on every read, so an
// index that is out of range (or became stale) reads as "nothing active".
// A Trainer is safe for concurrent use; events are emitted after the
// internal lock is released, so listeners may call back into the Trainer.
type Trainer struct {
	mu          sync.Mutex
	items       []Item
	selected    int
	hasSelected bool
	rng         *rand.Rand
	stats       *statistic.Statistic
	events      observer.Observers[Event]
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithStatistic makes the trainer count guesses in stats.
func WithStatistic(stats *statistic.Statistic) Option {
	return func(t *Trainer) {
		if stats != nil {
			t.stats = stats
		}
	}
}

// WithRand sets the random source used by SelectRandom.
func WithRand(rng *rand.Rand) Option {
	return func(t *Trainer) {
		t.rng = rng
	}
}

// New creates a trainer for items with nothing selected.
func New(items []Item, opts ...Option) *Trainer {
	t := &Trainer{
		items: append([]Item(nil), items...),
		stats: statistic.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Items returns a copy of the drillable items in their original order.
func (t *Trainer) Items() []Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Item(nil), t.items...)
}

// Len returns the number of items.
func (t *Trainer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

// Statistic returns the score tracker guesses are counted in.
func (t *Trainer) Statistic() *statistic.Statistic {
	return t.stats
}

// Active returns the active item, if any.
func (t *Trainer) Active() (Item, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active()
}

func (t *Trainer) active() (Item, bool) {
	if !t.hasSelected || t.selected < 0 || t.selected >= len(t.items) {
		return Item{}, false
	}
	return t.items[t.selected], true
}

// Select makes the item at idx active. An index outside the list is kept
// but reads as no selection.
func (t *Trainer) Select(idx int) (Item, bool) {
	t.mu.Lock()
	t.selected = idx
	t.hasSelected = true
	item, ok := t.active()
	t.mu.Unlock()

	t.events.Notify(SelectEvent{Item: item, Selected: ok})
	return item, ok
}

// SelectRandom makes a uniformly chosen item active. With no items the
// selection is cleared.
func (t *Trainer) SelectRandom() (Item, bool) {
	t.mu.Lock()
	if len(t.items) == 0 {
		t.hasSelected = false
		t.mu.Unlock()

		t.events.Notify(SelectEvent{})
		return Item{}, false
	}
	idx := t.intN(len(t.items))
	t.mu.Unlock()

	return t.Select(idx)
}

func (t *Trainer) intN(n int) int {
	if t.rng != nil {
		return t.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Guess compares text with the active item's word. A GuessEvent is emitted
// before anything else changes. On a correct guess the correct counter is
// incremented and the selection cleared; otherwise the incorrect counter is
// incremented and the selection stays.
func (t *Trainer) Guess(text string) bool {
	t.mu.Lock()
	item, ok := t.active()
	t.mu.Unlock()

	correct := ok && item.Text == text
	t.events.Notify(GuessEvent{Guess: text, Correct: correct})

	if !correct {
		t.stats.IncrementIncorrect()
		return false
	}

	t.stats.IncrementCorrect()

	t.mu.Lock()
	t.hasSelected = false
	t.mu.Unlock()

	t.events.Notify(SelectEvent{})
	return true
}

// Observe registers fn for every future event.
func (t *Trainer) Observe(fn func(Event)) {
	t.events.Observe(fn)
}

// Subscribe is like Observe but returns a handle to remove fn again.
func (t *Trainer) Subscribe(fn func(Event)) *observer.Subscription {
	return t.events.Subscribe(fn)
}
