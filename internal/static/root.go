package static

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root is the directory files are served from. It is resolved once at
// startup and handed to the file handler; the process working directory is
// left alone.
type Root string

// ExecutableRoot returns the absolute directory holding the running binary,
// with symlinks resolved, so the served tree does not depend on where the
// program was launched from.
func ExecutableRoot() (Root, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir, err := filepath.Abs(filepath.Dir(exe))
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	return Root(dir), nil
}

func (r Root) String() string { return string(r) }
