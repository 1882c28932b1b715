// Package statistic tracks correct and incorrect guesses and notifies
// observers whenever one of the counters changes.
package statistic
