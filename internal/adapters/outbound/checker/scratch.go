package checker

import (
	"fmt"
	"os"
)

// withScratchFile writes content to a transient, exclusively-owned file and
// invokes fn with its path. Removal is bound to the scope, not left to a
// cleanup step: the file is gone after every return path, including fn
// failures and panics.
func withScratchFile(content, ext string, fn func(path string) error) error {
	f, err := os.CreateTemp("", "prlens-*"+ext)
	if err != nil {
		return fmt.Errorf("creating scratch file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("writing scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing scratch file: %w", err)
	}

	return fn(path)
}
