//go:build !windows

package songxml

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// writeFileAtomic replaces path with data, so readers see either the old or
// the new content. An existing file keeps its permissions.
func writeFileAtomic(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644, renameio.WithExistingPermissions()); err != nil {
		return fmt.Errorf("could not replace %v: %w", path, err)
	}
	return nil
}
