// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ConfigurationError is returned when a root directory cannot be used at the start of a pass.
type ConfigurationError struct {
	Name string // "source" or "replica"
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s directory %q is not accessible: %v", e.Name, e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// FileOperationError is a failure on a single file during a pass.
// It is reported as an error event and never aborts the pass.
type FileOperationError struct {
	Op           string // e.g. "copy", "hash", "delete"
	RelativePath string
	Err          error
}

func (e *FileOperationError) Error() string {
	return fmt.Sprintf("error during %s of %q: %v", e.Op, e.RelativePath, e.Err)
}

func (e *FileOperationError) Unwrap() error {
	return e.Err
}

// Detail returns the operation and cause without the path.
func (e *FileOperationError) Detail() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

var errNotDirectory = errors.New("not a directory")

// isNotExist reports whether err means nothing exists at the path,
// including when a parent element is a regular file.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
