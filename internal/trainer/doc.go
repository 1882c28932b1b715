// Package trainer holds the list of words to drill, tracks which one is
// active and scores guesses against it. State changes are announced as
// Events so that presentation code can follow along without the trainer
// knowing about it.
package trainer
