// Package drill runs an interactive spelling drill in the terminal. It
// reads guesses line by line, hands them to a trainer and prints what the
// trainer and its statistic report back.
package drill
