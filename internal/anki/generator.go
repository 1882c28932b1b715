package anki

import (
	"encoding/csv"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"codeberg.org/snonux/worttrainer/internal/trainer"
)

// Card represents a single Anki flashcard: the picture on the front and the
// word on the back.
type Card struct {
	Word        string // The answer
	ImageURL    string // Picture shown on the front
	Attribution string // Optional credit shown below the picture
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddItems adds one card per trainer item.
func (g *Generator) AddItems(items []trainer.Item) {
	for _, item := range items {
		g.AddCard(Card{Word: item.Text, ImageURL: item.URL, Attribution: item.Attribution})
	}
}

// Cards returns the collected cards
func (g *Generator) Cards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	if dir := filepath.Dir(g.options.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Create output file
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	// Create CSV writer
	writer := csv.NewWriter(file)

	// Write headers if requested
	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"Front", "Back"}); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	// Write cards
	for _, card := range g.cards {
		if err := writer.Write([]string{g.formatFront(card), card.Word}); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// formatFront renders the picture and its credit as Anki field HTML
func (g *Generator) formatFront(card Card) string {
	if card.ImageURL == "" {
		return ""
	}

	front := fmt.Sprintf(`<img src="%s">`, html.EscapeString(card.ImageURL))
	if card.Attribution != "" {
		front += "<br><small>" + html.EscapeString(card.Attribution) + "</small>"
	}
	return front
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withImages int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.ImageURL != "" {
			withImages++
		}
	}

	return
}
