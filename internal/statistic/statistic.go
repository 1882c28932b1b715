package statistic

import (
	"fmt"
	"sync"

	"codeberg.org/snonux/worttrainer/internal/observer"
)

// Event is emitted by a Statistic when a counter changes.
type Event interface {
	statisticEvent()
}

// CorrectEvent reports the new correct count and total.
type CorrectEvent struct {
	Count int
	Total int
}

// IncorrectEvent reports the new incorrect count and total.
type IncorrectEvent struct {
	Count int
	Total int
}

func (CorrectEvent) statisticEvent()   {}
func (IncorrectEvent) statisticEvent() {}

// Score is a snapshot of both counters.
type Score struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Total returns the number of guesses counted.
func (s Score) Total() int {
	return s.Correct + s.Incorrect
}

// Percent returns the share of correct guesses, or 0 for an empty score.
func (s Score) Percent() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total()) * 100
}

// Statistic counts guesses. Counters only grow until Reset is called.
// It is safe for concurrent use.
type Statistic struct {
	mu        sync.Mutex
	correct   int
	incorrect int
	observers observer.Observers[Event]
}

// New creates a Statistic with both counters at zero.
func New() *Statistic {
	return &Statistic{}
}

// FromScore restores a Statistic from a saved score. Negative counters are
// treated as zero.
func FromScore(score Score) *Statistic {
	return &Statistic{
		correct:   max(score.Correct, 0),
		incorrect: max(score.Incorrect, 0),
	}
}

func (s *Statistic) Correct() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct
}

func (s *Statistic) Incorrect() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incorrect
}

func (s *Statistic) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct + s.incorrect
}

// Score returns a consistent snapshot of both counters.
func (s *Statistic) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Score{Correct: s.correct, Incorrect: s.incorrect}
}

// IncrementCorrect counts one correct guess and emits a CorrectEvent.
func (s *Statistic) IncrementCorrect() {
	s.mu.Lock()
	s.correct++
	event := CorrectEvent{Count: s.correct, Total: s.correct + s.incorrect}
	s.mu.Unlock()

	s.observers.Notify(event)
}

// IncrementIncorrect counts one incorrect guess and emits an IncorrectEvent.
func (s *Statistic) IncrementIncorrect() {
	s.mu.Lock()
	s.incorrect++
	event := IncorrectEvent{Count: s.incorrect, Total: s.correct + s.incorrect}
	s.mu.Unlock()

	s.observers.Notify(event)
}

// Reset sets both counters to zero without notifying observers.
func (s *Statistic) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.correct = 0
	s.incorrect = 0
}

// Percent returns the share of correct guesses, or 0 if nothing was guessed yet.
func (s *Statistic) Percent() float64 {
	return s.Score().Percent()
}

// String formats the score the way it is shown to the user.
func (s *Statistic) String() string {
	score := s.Score()
	return fmt.Sprintf("%d correct, %d incorrect out of %d (%.2f%%)",
		score.Correct, score.Incorrect, score.Total(), score.Percent())
}

// Observe registers fn for every future counter change.
func (s *Statistic) Observe(fn func(Event)) {
	s.observers.Observe(fn)
}

// Subscribe is like Observe but returns a handle to remove fn again.
func (s *Statistic) Subscribe(fn func(Event)) *observer.Subscription {
	return s.observers.Subscribe(fn)
}
