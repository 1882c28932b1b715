// Package processor contains the application logic behind the worttrainer
// command. It loads the word list and saved state, runs a drill session with
// guesses being recorded in the background, and saves the state afterwards.
// This package serves as the main coordinator between all other components.
package processor
