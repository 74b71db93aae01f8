// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"fmt"

	"github.com/spf13/afero"
)

// RemoveIfExists removes the file at name and reports whether anything was removed.
// A file that is already gone is not an error.
func RemoveIfExists(fs afero.Fs, name string) (bool, error) {
	if err := fs.Remove(name); err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("error removing %q: %w", name, err)
	}
	return true, nil
}
