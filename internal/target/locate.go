package target

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wagiedev/linebridge/internal/errors"
)

// Locate verifies that path names an existing regular file (or symlink to
// one) and returns its absolute form.
func Locate(log *slog.Logger, path string) (string, error) {
	log.Debug("Locating target program", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		log.Debug("Target program not found", "path", path, "error", err)

		return "", &errors.TargetNotFoundError{Path: path, Err: err}
	}

	if info.IsDir() {
		log.Debug("Target program is a directory", "path", path)

		return "", &errors.TargetNotFoundError{
			Path: path,
			Err:  fmt.Errorf("%s is a directory", path),
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}

	log.Debug("Found target program", "path", abs)

	return abs, nil
}

// LookupInterpreter resolves name to an executable path.
//
// Names containing a path separator are used as-is, otherwise PATH is
// searched. Returns *errors.SpawnError if nothing executable is found.
func LookupInterpreter(log *slog.Logger, name string) (string, error) {
	log.Debug("Looking up interpreter", "interpreter", name)

	path, err := exec.LookPath(name)
	if err != nil {
		log.Debug("Interpreter not found", "interpreter", name, "error", err)

		return "", &errors.SpawnError{Interpreter: name, Err: err}
	}

	log.Debug("Found interpreter", "interpreter", name, "path", path)

	return path, nil
}
