// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ValidateInput describes a directory that must exist before synchronization begins.
type ValidateInput struct {
	FileSystem afero.Fs
	Name       string // used in error messages, e.g. "source"
	Path       string
	Parents    bool // create the directory (and its parents) if missing
}

// Validate returns the cleaned absolute path of a directory.
// The path must not be empty, must resolve to an absolute path, and must exist as a directory,
// unless parents is true in which case a missing directory is created.
func Validate(input *ValidateInput) (string, error) {
	if strings.TrimSpace(input.Path) == "" {
		return "", fmt.Errorf("%s path cannot be empty", input.Name)
	}
	if strings.ContainsRune(input.Path, 0) {
		return "", fmt.Errorf("%s path contains invalid characters: %q", input.Name, input.Path)
	}

	p := strings.TrimPrefix(input.Path, "file://")

	absolutePath, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("error creating absolute path for %s %q: %w", input.Name, input.Path, err)
	}

	fileSystem := input.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}

	fi, err := fileSystem.Stat(absolutePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("error stating %s directory %q: %w", input.Name, absolutePath, err)
		}
		if !input.Parents {
			return "", fmt.Errorf("%s directory %q does not exist and parents is false", input.Name, absolutePath)
		}
		if err := fileSystem.MkdirAll(absolutePath, 0755); err != nil {
			return "", fmt.Errorf("error creating %s directory %q: %w", input.Name, absolutePath, err)
		}
		return absolutePath, nil
	}

	if !fi.IsDir() {
		return "", fmt.Errorf("%s path %q is not a directory", input.Name, absolutePath)
	}

	return absolutePath, nil
}
