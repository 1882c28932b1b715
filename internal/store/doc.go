// Package store persists trainer state and the log of guesses in a SQLite
// database. The schema is managed with embedded golang-migrate migrations.
package store
