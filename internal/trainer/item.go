package trainer

// Item is a single word to drill together with the image that illustrates it.
type Item struct {
	Text        string `json:"text"`
	URL         string `json:"url"`
	Attribution string `json:"attribution,omitempty"`
}

// Event describes a state change of a Trainer.
type Event interface {
	trainerEvent()
}

// SelectEvent is emitted whenever the active item changes. Selected is
// false when no item is active.
type SelectEvent struct {
	Item     Item
	Selected bool
}

// GuessEvent is emitted for every evaluated guess.
type GuessEvent struct {
	Guess   string
	Correct bool
}

func (SelectEvent) trainerEvent() {}
func (GuessEvent) trainerEvent()  {}
