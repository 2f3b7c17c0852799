// Package filex contains filesystem helpers for saving downloaded media.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ResolveTarget returns the path a file called name should be written to
// when the user asked for dest. An existing directory (or a dest ending in a
// separator) receives name inside it; anything else is used as is.
func ResolveTarget(dest, name string) string {
	if dest == "" {
		return filepath.Base(name)
	}
	if os.IsPathSeparator(dest[len(dest)-1]) {
		return filepath.Join(dest, filepath.Base(name))
	}
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		return filepath.Join(dest, filepath.Base(name))
	}
	return dest
}

// Save copies r into path, creating parent directories. The file is written
// to a temporary sibling first and renamed into place, so a failed copy
// never leaves a truncated file behind. It returns the number of bytes
// written.
func Save(path string, r io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("rename %s: %w", path, err)
	}
	return n, nil
}
