// Package archive moves a state database out of the way so that the next
// run starts fresh, keeping the old one under a timestamped name.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveState moves the state file at statePath into an "archive"
// directory next to it and returns the new location.
func ArchiveState(statePath string) (string, error) {
	// Check if state file exists
	info, err := os.Stat(statePath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("state file does not exist: %s", statePath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat state file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("state path is a directory: %s", statePath)
	}

	archiveDir := filepath.Join(filepath.Dir(statePath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(statePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, timestamp, ext))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, timestamp, ext))
	}

	if err := os.Rename(statePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive state file: %w", err)
	}

	return archivePath, nil
}
