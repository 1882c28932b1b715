package trainer

import (
	"math/rand/v2"
	"reflect"
	"sync"
	"testing"

	"codeberg.org/snonux/worttrainer/internal/statistic"
	"codeberg.org/snonux/worttrainer/internal/testutil"
)

var testWords = []Item{
	{Text: "Apple", URL: "https://apple.com/"},
	{Text: "Raspberry", URL: "https://raspberry.org/"},
}

func newObserved(items []Item, opts ...Option) (*Trainer, *testutil.Recorder[Event]) {
	tr := New(items, opts...)
	rec := &testutil.Recorder[Event]{}
	tr.Observe(rec.Record)
	return tr, rec
}

func assertEvents(t *testing.T, rec *testutil.Recorder[Event], expected ...Event) {
	t.Helper()

	got := rec.Events()
	if len(expected) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected events %#v, got %#v", expected, got)
	}
}

func TestDefaultSelected(t *testing.T) {
	tr, rec := newObserved(nil)

	if _, ok := tr.Active(); ok {
		t.Error("Expected no default selected word")
	}
	assertEvents(t, rec)
}

func TestSelectFromEmptyWordlist(t *testing.T) {
	tr, rec := newObserved(nil)

	if _, ok := tr.Select(0); ok {
		t.Error("Expected Select(0) on empty list to return no item")
	}
	if _, ok := tr.Active(); ok {
		t.Error("Expected no active item")
	}
	assertEvents(t, rec, SelectEvent{})
}

func TestSelectInvalidIndex(t *testing.T) {
	tests := []struct {
		name string
		idx  int
	}{
		{"just past the end", 2},
		{"far past the end", 100},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, rec := newObserved(testWords)

			if _, ok := tr.Select(tt.idx); ok {
				t.Errorf("Expected Select(%d) to return no item", tt.idx)
			}
			if _, ok := tr.Active(); ok {
				t.Errorf("Expected no active item after Select(%d)", tt.idx)
			}
			assertEvents(t, rec, SelectEvent{})
		})
	}
}

func TestSelectValidIndex(t *testing.T) {
	for i, word := range testWords {
		tr, rec := newObserved(testWords)

		item, ok := tr.Select(i)
		if !ok || item != word {
			t.Errorf("Expected Select(%d) to return %+v, got %+v (%v)", i, word, item, ok)
		}
		if active, ok := tr.Active(); !ok || active != word {
			t.Errorf("Expected active item %+v, got %+v", word, active)
		}
		assertEvents(t, rec, SelectEvent{Item: word, Selected: true})
	}
}

func TestSelectRandomFromEmptyWordlist(t *testing.T) {
	tr, rec := newObserved(nil)

	if _, ok := tr.SelectRandom(); ok {
		t.Error("Expected no item from empty list")
	}
	if _, ok := tr.Active(); ok {
		t.Error("Expected no active item")
	}
	assertEvents(t, rec, SelectEvent{})
}

func TestSelectRandomClearsStaleSelectionOnEmptyList(t *testing.T) {
	tr := Restore(State{Selected: intPtr(3)})
	rec := &testutil.Recorder[Event]{}
	tr.Observe(rec.Record)

	tr.SelectRandom()

	if state := tr.State(); state.Selected != nil {
		t.Errorf("Expected selection to be cleared, got %d", *state.Selected)
	}
	assertEvents(t, rec, SelectEvent{})
}

func TestSelectRandomFromWords(t *testing.T) {
	tr, rec := newObserved(testWords)

	item, ok := tr.SelectRandom()
	if !ok || !contains(testWords, item) {
		t.Errorf("Expected a word from the list, got %+v (%v)", item, ok)
	}
	if active, ok := tr.Active(); !ok || active != item {
		t.Errorf("Expected active item %+v, got %+v", item, active)
	}
	assertEvents(t, rec, SelectEvent{Item: item, Selected: true})
}

func TestSelectRandomEventuallyPicksEveryWord(t *testing.T) {
	tr := New(testWords)
	seen := map[Item]bool{}

	for i := 0; i < 1000 && len(seen) < len(testWords); i++ {
		item, _ := tr.SelectRandom()
		seen[item] = true
	}

	if len(seen) != len(testWords) {
		t.Errorf("Expected all %d words to be picked, got %v", len(testWords), seen)
	}
}

func TestSelectRandomWithRand(t *testing.T) {
	seed := func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

	first := New(testWords, WithRand(seed()))
	second := New(testWords, WithRand(seed()))

	for i := 0; i < 10; i++ {
		a, _ := first.SelectRandom()
		b, _ := second.SelectRandom()
		if a != b {
			t.Fatalf("Expected identical picks with identical seeds, got %+v and %+v", a, b)
		}
	}
}

func TestCorrectGuess(t *testing.T) {
	tr, rec := newObserved(testWords)
	tr.Select(0)
	rec.Reset()

	if !tr.Guess("Apple") {
		t.Error("Expected the guess to be correct")
	}
	if _, ok := tr.Active(); ok {
		t.Error("Expected selection to be cleared after a correct guess")
	}
	if tr.Statistic().Correct() != 1 || tr.Statistic().Incorrect() != 0 {
		t.Errorf("Expected 1 correct and 0 incorrect, got %+v", tr.Statistic().Score())
	}
	assertEvents(t, rec,
		GuessEvent{Guess: "Apple", Correct: true},
		SelectEvent{},
	)
}

func TestIncorrectGuess(t *testing.T) {
	tr, rec := newObserved(testWords)
	tr.Select(0)
	rec.Reset()

	if tr.Guess("Raspberry") {
		t.Error("Expected the guess to be incorrect")
	}
	if active, ok := tr.Active(); !ok || active != testWords[0] {
		t.Errorf("Expected %+v to stay selected, got %+v", testWords[0], active)
	}
	if tr.Statistic().Correct() != 0 || tr.Statistic().Incorrect() != 1 {
		t.Errorf("Expected 0 correct and 1 incorrect, got %+v", tr.Statistic().Score())
	}
	assertEvents(t, rec, GuessEvent{Guess: "Raspberry", Correct: false})
}

func TestGuessIsExactMatch(t *testing.T) {
	tests := []string{"apple", "Apple ", " Apple", "APPLE", ""}

	for _, guess := range tests {
		tr := New(testWords)
		tr.Select(0)
		if tr.Guess(guess) {
			t.Errorf("Expected guess %q not to match %q", guess, "Apple")
		}
	}
}

func TestGuessWithoutSelection(t *testing.T) {
	tr, rec := newObserved(testWords)

	if tr.Guess("Apple") {
		t.Error("Expected a guess without active item to be incorrect")
	}
	if tr.Statistic().Incorrect() != 1 {
		t.Errorf("Expected 1 incorrect guess, got %d", tr.Statistic().Incorrect())
	}
	assertEvents(t, rec, GuessEvent{Guess: "Apple", Correct: false})
}

func TestGuessEmptyStringOnEmptyList(t *testing.T) {
	tr := New(nil)
	if tr.Guess("") {
		t.Error("Expected empty guess against no item to be incorrect")
	}
}

func TestEventOrderAcrossTrainerAndStatistic(t *testing.T) {
	tr := New(testWords)
	var order []string
	tr.Observe(func(e Event) {
		switch e := e.(type) {
		case GuessEvent:
			order = append(order, "guess")
		case SelectEvent:
			if e.Selected {
				order = append(order, "select")
			} else {
				order = append(order, "clear")
			}
		}
	})
	tr.Statistic().Observe(func(e statistic.Event) {
		switch e.(type) {
		case statistic.CorrectEvent:
			order = append(order, "correct")
		case statistic.IncorrectEvent:
			order = append(order, "incorrect")
		}
	})

	tr.Select(0)
	tr.Guess("Raspberry")
	tr.Guess("Apple")

	expected := []string{"select", "guess", "incorrect", "guess", "correct", "clear"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("Expected order %v, got %v", expected, order)
	}
}

func TestGuessEventSeenBeforeSelectionIsCleared(t *testing.T) {
	tr := New(testWords)
	tr.Select(1)

	var activeDuringGuess bool
	tr.Observe(func(e Event) {
		if _, ok := e.(GuessEvent); ok {
			_, activeDuringGuess = tr.Active()
		}
	})

	tr.Guess("Raspberry")

	if !activeDuringGuess {
		t.Error("Expected the item to still be active while the guess event is delivered")
	}
}

func TestListenerMayReenterTrainer(t *testing.T) {
	tr := New(testWords)
	picks := 0
	tr.Observe(func(e Event) {
		if sel, ok := e.(SelectEvent); ok && !sel.Selected && picks < 3 {
			picks++
			tr.SelectRandom()
		}
	})

	tr.Select(0)
	tr.Guess("Apple")

	if _, ok := tr.Active(); !ok {
		t.Error("Expected listener to have selected a new item")
	}
}

func TestScoreIsMonotonicUntilReset(t *testing.T) {
	tr := New(testWords)
	guesses := []string{"Apple", "x", "Raspberry", "Apple", "y"}
	last := tr.Statistic().Score()

	for i, guess := range guesses {
		tr.Select(i % 2)
		tr.Guess(guess)
		score := tr.Statistic().Score()
		if score.Correct < last.Correct || score.Incorrect < last.Incorrect {
			t.Fatalf("Score decreased from %+v to %+v", last, score)
		}
		if score.Total() != last.Total()+1 {
			t.Fatalf("Expected total to grow by one, got %+v after %+v", score, last)
		}
		last = score
	}

	tr.Statistic().Reset()
	if tr.Statistic().Total() != 0 {
		t.Errorf("Expected total 0 after reset, got %d", tr.Statistic().Total())
	}
}

func TestWithStatistic(t *testing.T) {
	stats := statistic.FromScore(statistic.Score{Correct: 5})
	tr := New(testWords, WithStatistic(stats))
	tr.Select(0)
	tr.Guess("Apple")

	if stats.Correct() != 6 {
		t.Errorf("Expected shared statistic to count 6, got %d", stats.Correct())
	}
	if tr.Statistic() != stats {
		t.Error("Expected Statistic() to return the injected tracker")
	}
}

func TestItemsAreCopied(t *testing.T) {
	words := []Item{{Text: "Apple", URL: "https://apple.com/"}}
	tr := New(words)
	words[0].Text = "Pear"

	items := tr.Items()
	if items[0].Text != "Apple" {
		t.Errorf("Expected trainer to keep its own copy, got %q", items[0].Text)
	}
	items[0].Text = "Plum"
	if tr.Items()[0].Text != "Apple" {
		t.Error("Expected Items() to return a copy")
	}
	if tr.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", tr.Len())
	}
}

func TestDuplicateItems(t *testing.T) {
	words := []Item{testWords[0], testWords[0]}
	tr := New(words)

	for i := range words {
		if item, ok := tr.Select(i); !ok || item != testWords[0] {
			t.Errorf("Expected duplicate at %d to be selectable, got %+v", i, item)
		}
	}
}

func TestConcurrentGuesses(t *testing.T) {
	tr := New(testWords)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tr.SelectRandom()
				tr.Guess("Apple")
			}
		}()
	}
	wg.Wait()

	if total := tr.Statistic().Total(); total != 1000 {
		t.Errorf("Expected 1000 counted guesses, got %d", total)
	}
}

func TestSubscribe(t *testing.T) {
	tr := New(testWords)
	rec := &testutil.Recorder[Event]{}
	sub := tr.Subscribe(rec.Record)

	tr.Select(0)
	sub.Unsubscribe()
	tr.Select(1)

	if rec.Len() != 1 {
		t.Errorf("Expected 1 event before unsubscribe, got %d", rec.Len())
	}
}

func contains(items []Item, item Item) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}

func intPtr(i int) *int {
	return &i
}
