// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// UnpairedLog lists annotation files whose image is missing or cannot
	// be read, one stem per line.
	UnpairedLog = "xmlfiles_with_no_paired.txt"

	// FailedLog lists annotation files that failed for any other reason,
	// one "<stem>: <reason>" per line.
	FailedLog = "xmlfiles_with_errors.txt"
)

func logUnpaired(dir, name string) error {
	return appendLine(filepath.Join(dir, UnpairedLog), name)
}

func logFailed(dir, name string, cause error) error {
	reason := strings.ReplaceAll(cause.Error(), "\n", " ")
	return appendLine(filepath.Join(dir, FailedLog), name+": "+reason)
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening error log %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}
