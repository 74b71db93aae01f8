// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"fmt"
)

// SinkError is returned when an event could not be written to its log file.
type SinkError struct {
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("error writing event to log file %q: %v", e.Path, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
