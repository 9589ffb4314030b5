package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that should contain path, so that
// opening a database file in a fresh location does not fail. It returns the
// directory created (or found).
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return ".", nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
