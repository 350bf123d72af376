package partition

import (
	"os"
	"path/filepath"
)

// FS resolves absolute device paths below Root. An empty Root probes the
// real filesystem. Paths handed out by this package never include Root.
type FS struct {
	Root string
}

func (fs FS) real(path string) string {
	if fs.Root == "" {
		return path
	}
	return filepath.Join(fs.Root, path)
}

// Exists reports whether path exists
func (fs FS) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(fs.real(path))
	return err == nil
}

// Real returns the host path for path
func (fs FS) Real(path string) string {
	return fs.real(path)
}
