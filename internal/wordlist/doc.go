// Package wordlist reads the words to drill from plain text files and
// provides the built-in list used when nothing else is configured.
package wordlist
