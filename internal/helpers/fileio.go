package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// ReadInput reads a whole file, or stdin when path is "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == StdinPath {
		if stdin == nil {
			return nil, fmt.Errorf("no stdin available")
		}
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// WriteSecretFile writes data readable only by the owner. Parent
// directories are created with 0700.
func WriteSecretFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict %s: %w", path, err)
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists at the given path.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string, perm os.FileMode) error {
	if DirExists(path) {
		return nil
	}
	return os.MkdirAll(path, perm)
}
