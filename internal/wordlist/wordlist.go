package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"codeberg.org/snonux/worttrainer/internal/trainer"
)

// ErrEmpty is returned when a word list contains no words.
var ErrEmpty = errors.New("word list contains no words")

// ReadWordFile reads words from a file.
// Supports formats:
// - Word with image: "Apple = https://example.com/apple.jpg"
// - With attribution: "Apple = https://example.com/apple.jpg | Photo by Jane Doe"
// Empty lines and lines starting with '#' are ignored.
func ReadWordFile(filename string) ([]trainer.Item, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}
	defer file.Close()

	items, err := ParseWords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return items, nil
}

// ParseWords parses a word list in the ReadWordFile format.
func ParseWords(r io.Reader) ([]trainer.Item, error) {
	var items []trainer.Item

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		item, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return items, nil
}

func parseLine(line string) (trainer.Item, error) {
	word, rest, found := strings.Cut(line, "=")
	if !found {
		return trainer.Item{}, fmt.Errorf("expected 'word = url', got %q", line)
	}

	word = strings.TrimSpace(word)
	if word == "" {
		return trainer.Item{}, fmt.Errorf("missing word in %q", line)
	}

	link, attribution, _ := strings.Cut(rest, "|")
	link = strings.TrimSpace(link)
	if err := validateURL(link); err != nil {
		return trainer.Item{}, err
	}

	return trainer.Item{
		Text:        word,
		URL:         link,
		Attribution: strings.TrimSpace(attribution),
	}, nil
}

func validateURL(link string) error {
	if link == "" {
		return errors.New("missing image url")
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid image url %q: %w", link, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("image url %q must be absolute", link)
	}
	return nil
}

// Format renders items in the ReadWordFile format, one word per line.
func Format(items []trainer.Item) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item.Text)
		b.WriteString(" = ")
		b.WriteString(item.URL)
		if item.Attribution != "" {
			b.WriteString(" | ")
			b.WriteString(item.Attribution)
		}
		b.WriteString("\n")
	}
	return b.String()
}
