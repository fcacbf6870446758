package songxml

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic replaces path with data through a temporary file in the
// same directory. renameio does not support Windows, where os.Rename over an
// existing file maps to MoveFileEx with MOVEFILE_REPLACE_EXISTING.
func writeFileAtomic(path string, data []byte) (err error) {
	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary file for %v: %w", path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("could not write %v: %w", f.Name(), err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("could not close %v: %w", f.Name(), err)
	}
	if err = os.Chmod(f.Name(), perm); err != nil {
		return fmt.Errorf("could not set permissions on %v: %w", f.Name(), err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("could not replace %v: %w", path, err)
	}
	return nil
}
