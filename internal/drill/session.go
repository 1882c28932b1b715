package drill

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"

	"codeberg.org/snonux/worttrainer/internal/statistic"
	"codeberg.org/snonux/worttrainer/internal/trainer"
)

// Selection orders.
const (
	OrderRandom     = "random"
	OrderSequential = "sequential"
)

// closeDistance is the largest edit distance reported as a near miss.
const closeDistance = 2

// Options configures a Session.
type Options struct {
	// Order is OrderRandom (default) or OrderSequential.
	Order  string
	Logger *slog.Logger
}

// Session is one interactive drill over a trainer.
type Session struct {
	trainer *trainer.Trainer
	in      io.Reader
	out     io.Writer
	order   string
	logger  *slog.Logger
	styles  styles

	next    int
	current string
}

// New creates a drill session reading guesses from in and writing to out.
func New(t *trainer.Trainer, in io.Reader, out io.Writer, opts Options) *Session {
	order := opts.Order
	if order != OrderSequential {
		order = OrderRandom
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		trainer: t,
		in:      in,
		out:     out,
		order:   order,
		logger:  logger,
		styles:  newStyles(out),
	}
}

// Run drills until the input ends, the user quits or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if s.trainer.Len() == 0 {
		fmt.Fprintln(s.out, "No words to practice. Provide a word list with --words.")
		return nil
	}

	trainerSub := s.trainer.Subscribe(s.onTrainerEvent)
	defer trainerSub.Unsubscribe()
	statSub := s.trainer.Statistic().Subscribe(s.onStatisticEvent)
	defer statSub.Unsubscribe()

	done := make(chan struct{})
	defer close(done)
	lines, errs := s.readLines(done)

	fmt.Fprintln(s.out, s.styles.muted.Render("Type the word for each picture. :help lists commands."))
	if item, ok := s.trainer.Active(); ok {
		s.announce(item)
	} else {
		s.pickNext()
	}

	for {
		fmt.Fprint(s.out, s.styles.prompt.Render("> "))

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return <-errs
			}
			if quit := s.handle(strings.TrimSpace(line)); quit {
				return nil
			}
		}

		if _, ok := s.trainer.Active(); !ok {
			s.pickNext()
		}
	}
}

func (s *Session) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				errs <- nil
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- fmt.Errorf("failed to read input: %w", err)
			return
		}
		errs <- nil
	}()

	return lines, errs
}

func (s *Session) handle(input string) (quit bool) {
	switch input {
	case "":
	case ":q", ":quit":
		return true
	case ":skip":
		s.logger.Debug("skipping word", "word", s.current)
		s.pickNext()
	case ":stats":
		fmt.Fprintln(s.out, s.styles.score.Render(s.trainer.Statistic().String()))
	case ":reset":
		s.trainer.Statistic().Reset()
		fmt.Fprintln(s.out, s.styles.muted.Render("Score reset."))
	case ":help":
		s.printHelp()
	default:
		s.trainer.Guess(input)
	}
	return false
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  :skip   show another word")
	fmt.Fprintln(s.out, "  :stats  show the score")
	fmt.Fprintln(s.out, "  :reset  reset the score")
	fmt.Fprintln(s.out, "  :q      quit")
}

func (s *Session) pickNext() {
	if s.order == OrderSequential {
		idx := s.next % s.trainer.Len()
		s.next = idx + 1
		s.trainer.Select(idx)
		return
	}
	s.trainer.SelectRandom()
}

func (s *Session) onTrainerEvent(event trainer.Event) {
	switch e := event.(type) {
	case trainer.SelectEvent:
		if !e.Selected {
			return
		}
		s.announce(e.Item)
	case trainer.GuessEvent:
		if e.Correct {
			fmt.Fprintln(s.out, s.styles.correct.Render("Correct!"))
			return
		}
		fmt.Fprintln(s.out, s.styles.wrong.Render(fmt.Sprintf("Wrong: %q", e.Guess)))
		if hint := s.hint(e.Guess); hint != "" {
			fmt.Fprintln(s.out, s.styles.hint.Render(hint))
		}
	}
}

func (s *Session) onStatisticEvent(statistic.Event) {
	fmt.Fprintln(s.out, s.styles.score.Render(s.trainer.Statistic().String()))
}

func (s *Session) announce(item trainer.Item) {
	s.current = item.Text
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.styles.title.Render("What is shown here?"))
	fmt.Fprintln(s.out, "  "+s.styles.link.Render(item.URL))
	if item.Attribution != "" {
		fmt.Fprintln(s.out, "  "+s.styles.muted.Render(item.Attribution))
	}
}

// hint describes how close guess came to the current word.
func (s *Session) hint(guess string) string {
	if s.current == "" {
		return ""
	}
	if strings.EqualFold(guess, s.current) {
		return "Close: check upper and lower case."
	}

	distance := levenshtein.ComputeDistance(guess, s.current)
	if distance > closeDistance {
		return ""
	}
	if distance == 1 {
		return "Close: one letter off."
	}
	return fmt.Sprintf("Close: %d letters off.", distance)
}
