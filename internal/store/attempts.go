package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"codeberg.org/snonux/worttrainer/internal/trainer"
)

// Attempt is one evaluated guess.
type Attempt struct {
	ID        string
	Guess     string
	Expected  string
	Correct   bool
	CreatedAt time.Time
}

// RecordAttempt stores an attempt. A missing ID or timestamp is filled in.
func (s *Store) RecordAttempt(ctx context.Context, a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts(id, guess, expected, correct, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Guess, a.Expected, a.Correct, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

// Attempts returns up to limit attempts, newest first. A limit <= 0 returns all.
func (s *Store) Attempts(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, guess, expected, correct, created_at FROM attempts
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Guess, &a.Expected, &a.Correct, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to list attempts: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Recorder writes an Attempt for every guess seen on a trainer event stream.
type Recorder struct {
	store    *Store
	logger   *slog.Logger
	expected string
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Expect sets the word guesses are compared against until the next
// SelectEvent. Call it before Run when an item is already active.
func (r *Recorder) Expect(word string) {
	r.expected = word
}

// Run consumes events until the channel is closed or ctx is done. The word
// a guess is compared against is taken from the preceding SelectEvent.
// Failed writes are logged and do not stop the recorder.
func (r *Recorder) Run(ctx context.Context, events <-chan trainer.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}

			switch e := event.(type) {
			case trainer.SelectEvent:
				r.expected = e.Item.Text
			case trainer.GuessEvent:
				attempt := Attempt{Guess: e.Guess, Expected: r.expected, Correct: e.Correct}
				if err := r.store.RecordAttempt(ctx, attempt); err != nil {
					r.logger.Warn("failed to record attempt", "guess", e.Guess, "error", err)
					continue
				}
				r.logger.Debug("recorded attempt", "guess", e.Guess, "expected", r.expected, "correct", e.Correct)
			}
		}
	}
}
