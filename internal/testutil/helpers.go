package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateTestWordFile writes a word list in the "word = url" format into a
// temporary directory and returns its path.
func CreateTestWordFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.txt")
	CreateTestFile(t, path, []byte(strings.Join(lines, "\n")+"\n"))
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertContains checks if output contains a substring
func AssertContains(t *testing.T, output, substring string) {
	t.Helper()

	if !strings.Contains(output, substring) {
		t.Errorf("Expected output to contain %q, got:\n%s", substring, output)
	}
}

// AssertNotContains checks if output does not contain a substring
func AssertNotContains(t *testing.T, output, substring string) {
	t.Helper()

	if strings.Contains(output, substring) {
		t.Errorf("Expected output not to contain %q, got:\n%s", substring, output)
	}
}
