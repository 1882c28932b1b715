package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"codeberg.org/snonux/worttrainer/internal/anki"
	"codeberg.org/snonux/worttrainer/internal/archive"
	"codeberg.org/snonux/worttrainer/internal/cli"
	"codeberg.org/snonux/worttrainer/internal/drill"
	"codeberg.org/snonux/worttrainer/internal/observer"
	"codeberg.org/snonux/worttrainer/internal/statistic"
	"codeberg.org/snonux/worttrainer/internal/store"
	"codeberg.org/snonux/worttrainer/internal/trainer"
	"codeberg.org/snonux/worttrainer/internal/wordlist"
)

// recentAttempts is how many guesses --stats lists.
const recentAttempts = 10

// Processor handles the main application logic
type Processor struct {
	flags  *cli.Flags
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
}

// NewProcessor creates a new processor reading from stdin and writing to stdout
func NewProcessor(flags *cli.Flags, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		flags:  flags,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetIO replaces the input guesses are read from and the output the drill
// writes to.
func (p *Processor) SetIO(in io.Reader, out io.Writer) {
	p.in = in
	p.out = out
}

// RunDrill runs an interactive drill and saves the state when it ends.
func (p *Processor) RunDrill(ctx context.Context) error {
	if p.flags.Order != drill.OrderRandom && p.flags.Order != drill.OrderSequential {
		return fmt.Errorf("unknown order %q (use random or sequential)", p.flags.Order)
	}

	st, err := store.Open(p.flags.StateFile)
	if err != nil {
		return err
	}
	defer st.Close()

	tr, err := p.loadTrainer(ctx, st)
	if err != nil {
		return err
	}

	if p.flags.Reset {
		tr.Statistic().Reset()
		p.logger.Info("score reset")
	}

	// Guesses are written to the attempt log off the drill's goroutine.
	events := observer.NewBroadcaster[trainer.Event]()
	stream := events.Subscribe()
	observer.Forward[trainer.Event](tr, events)

	recorder := store.NewRecorder(st, p.logger)
	if item, ok := tr.Active(); ok {
		recorder.Expect(item.Text)
	}

	recorderDone := make(chan error, 1)
	go func() {
		recorderDone <- recorder.Run(context.WithoutCancel(ctx), stream.C())
	}()

	session := drill.New(tr, p.in, p.out, drill.Options{Order: p.flags.Order, Logger: p.logger})
	drillErr := session.Run(ctx)
	if errors.Is(drillErr, context.Canceled) {
		drillErr = nil
	}

	events.Close()
	if err := <-recorderDone; err != nil {
		p.logger.Warn("attempt recorder stopped", "error", err)
	}

	if err := st.SaveState(context.WithoutCancel(ctx), tr.State()); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	p.logger.Info("state saved", "path", st.Path(), "score", tr.Statistic().String())

	fmt.Fprintf(p.out, "\nScore: %s\n", tr.Statistic())
	return drillErr
}

// loadTrainer builds the trainer from the word file, the saved state or the
// built-in words, in that order of preference. A new word file keeps the
// saved score but drops the saved selection.
func (p *Processor) loadTrainer(ctx context.Context, st *store.Store) (*trainer.Trainer, error) {
	saved, found, err := st.LoadState(ctx)
	if err != nil {
		return nil, err
	}

	if p.flags.WordFile != "" {
		items, err := wordlist.ReadWordFile(p.flags.WordFile)
		if err != nil {
			return nil, err
		}

		if found && slices.Equal(items, saved.Items) {
			p.logger.Debug("word file matches saved state", "words", len(items))
			return trainer.Restore(saved), nil
		}

		p.logger.Info("loaded word file", "path", p.flags.WordFile, "words", len(items))
		return trainer.New(items, trainer.WithStatistic(statistic.FromScore(saved.Score))), nil
	}

	if found {
		p.logger.Debug("restored saved state", "words", len(saved.Items))
		return trainer.Restore(saved), nil
	}

	p.logger.Debug("using built-in words")
	return trainer.New(wordlist.DefaultItems()), nil
}

// PrintStatistic prints the saved score and the most recent guesses.
func (p *Processor) PrintStatistic(ctx context.Context) error {
	if _, err := os.Stat(p.flags.StateFile); os.IsNotExist(err) {
		fmt.Fprintln(p.out, "No saved state yet.")
		return nil
	}

	st, err := store.Open(p.flags.StateFile)
	if err != nil {
		return err
	}
	defer st.Close()

	state, found, err := st.LoadState(ctx)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(p.out, "No saved state yet.")
		return nil
	}

	fmt.Fprintf(p.out, "Words: %d\n", len(state.Items))
	fmt.Fprintf(p.out, "Score: %s\n", statistic.FromScore(state.Score))

	attempts, err := st.Attempts(ctx, recentAttempts)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		return nil
	}

	fmt.Fprintf(p.out, "\nRecent guesses:\n")
	for _, a := range attempts {
		mark := "✗"
		if a.Correct {
			mark = "✓"
		}
		fmt.Fprintf(p.out, "  %s %s  %-20s %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04"), mark, a.Guess, a.Expected)
	}
	return nil
}

// ArchiveState moves the state database to the archive.
func (p *Processor) ArchiveState() error {
	archivePath, err := archive.ArchiveState(p.flags.StateFile)
	if err != nil {
		return fmt.Errorf("failed to archive state: %w", err)
	}
	fmt.Fprintf(p.out, "State archived to: %s\n", archivePath)
	return nil
}

// ExportAnki writes the words that a drill would use as an Anki import CSV.
func (p *Processor) ExportAnki(ctx context.Context) error {
	items, err := p.exportItems(ctx)
	if err != nil {
		return err
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     p.flags.ExportFile,
		IncludeHeaders: true,
	})
	gen.AddItems(items)
	if err := gen.GenerateCSV(); err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}

	total, withImages := gen.Stats()
	p.logger.Info("exported anki cards", "path", p.flags.ExportFile, "cards", total, "with_images", withImages)
	fmt.Fprintf(p.out, "Exported %d cards to: %s\n", total, p.flags.ExportFile)
	return nil
}

func (p *Processor) exportItems(ctx context.Context) ([]trainer.Item, error) {
	if p.flags.WordFile != "" {
		return wordlist.ReadWordFile(p.flags.WordFile)
	}

	if _, err := os.Stat(p.flags.StateFile); err == nil {
		st, err := store.Open(p.flags.StateFile)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		state, found, err := st.LoadState(ctx)
		if err != nil {
			return nil, err
		}
		if found {
			return state.Items, nil
		}
	}

	return wordlist.DefaultItems(), nil
}
