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
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/navwar/gomirror/pkg/log"
)

type CopyInput struct {
	FileSystem      afero.Fs
	Source          string
	Destination     string
	Parents         bool // create missing parent directories of the destination
	PreserveModTime bool
	Logger          log.Logger
}

// Copy copies the bytes of the source file over the destination file.
// An existing destination is truncated and overwritten in place.
func Copy(input *CopyInput) (int64, error) {
	fs := input.FileSystem

	if input.Logger != nil {
		_ = input.Logger.Log("Copying file", map[string]interface{}{
			"src": input.Source,
			"dst": input.Destination,
		})
	}

	sourceFileInfo, err := fs.Stat(input.Source)
	if err != nil {
		return 0, fmt.Errorf("error stating source file at %q: %w", input.Source, err)
	}
	if sourceFileInfo.IsDir() {
		return 0, fmt.Errorf("source %q is a directory", input.Source)
	}

	// check parent directory and create it if allowed
	parent := filepath.Dir(input.Destination)
	if _, err := fs.Stat(parent); err != nil {
		if !os.IsNotExist(err) {
			return 0, fmt.Errorf("error stating destination parent %q: %w", parent, err)
		}
		if !input.Parents {
			return 0, fmt.Errorf(
				"parent directory for destination %q does not exist and parents parameter is false",
				input.Destination,
			)
		}
		if err := fs.MkdirAll(parent, 0755); err != nil {
			return 0, fmt.Errorf("error creating parent directories for %q: %w", input.Destination, err)
		}
	}

	sourceFile, err := fs.Open(input.Source)
	if err != nil {
		return 0, fmt.Errorf("error opening source file at %q: %w", input.Source, err)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	perm := sourceFileInfo.Mode().Perm()
	destinationFile, err := fs.OpenFile(input.Destination, flag, perm)
	if err != nil && errors.Is(err, os.ErrPermission) {
		// a read-only destination is replaced instead of written in place
		if removeError := fs.Remove(input.Destination); removeError == nil {
			destinationFile, err = fs.OpenFile(input.Destination, flag, perm)
		}
	}
	if err != nil {
		_ = sourceFile.Close() // silently close source file
		return 0, fmt.Errorf("error creating destination file at %q: %w", input.Destination, err)
	}

	written, err := io.Copy(destinationFile, sourceFile)
	if err != nil {
		_ = sourceFile.Close()      // silently close source file
		_ = destinationFile.Close() // silently close destination file
		return written, fmt.Errorf("error copying from %q to %q: %w", input.Source, input.Destination, err)
	}

	err = sourceFile.Close()
	if err != nil {
		_ = destinationFile.Close() // silently close destination file
		return written, fmt.Errorf("error closing source file after copying: %w", err)
	}

	err = destinationFile.Close()
	if err != nil {
		return written, fmt.Errorf("error closing destination file after copying: %w", err)
	}

	if input.PreserveModTime {
		// contents are already in place, so a failure here is only logged
		if err := fs.Chtimes(input.Destination, time.Now(), sourceFileInfo.ModTime()); err != nil && input.Logger != nil {
			_ = input.Logger.Log("Error preserving modification time", map[string]interface{}{
				"dst": input.Destination,
				"err": err.Error(),
			})
		}
	}

	if input.Logger != nil {
		_ = input.Logger.Log("Done copying file", map[string]interface{}{
			"src":     input.Source,
			"dst":     input.Destination,
			"written": written,
		})
	}

	return written, nil
}
