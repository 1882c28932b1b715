package trainer

import "codeberg.org/snonux/worttrainer/internal/statistic"

// State is everything needed to rebuild a Trainer: the items, the active
// index and the score. Listeners and the random source are not part of it.
type State struct {
	Items    []Item          `json:"items"`
	Selected *int            `json:"selected,omitempty"`
	Score    statistic.Score `json:"score"`
}

// State returns a snapshot of the trainer. The stored index is returned as
// is, even if it is out of range.
func (t *Trainer) State() State {
	t.mu.Lock()
	state := State{
		Items: append([]Item(nil), t.items...),
	}
	if t.hasSelected {
		idx := t.selected
		state.Selected = &idx
	}
	t.mu.Unlock()

	state.Score = t.stats.Score()
	return state
}

// Restore rebuilds a trainer from a snapshot. The score always comes from
// the snapshot, overriding any WithStatistic option.
func Restore(state State, opts ...Option) *Trainer {
	opts = append(opts[:len(opts):len(opts)], WithStatistic(statistic.FromScore(state.Score)))
	t := New(state.Items, opts...)
	if state.Selected != nil {
		t.selected = *state.Selected
		t.hasSelected = true
	}
	return t
}
