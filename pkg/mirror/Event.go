// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"errors"
	"time"
)

// Event records one action applied to the replica, or one per-file failure.
type Event struct {
	Timestamp    time.Time
	Action       Action
	RelativePath string
	Err          error // only set for ActionError
}

// Detail returns the failure cause of an error event, or an empty string.
func (e Event) Detail() string {
	if e.Err == nil {
		return ""
	}
	var fileOperationError *FileOperationError
	if errors.As(e.Err, &fileOperationError) {
		return fileOperationError.Detail()
	}
	return e.Err.Error()
}

// Count returns the number of events for each action.
func Count(events []Event) map[Action]int {
	counts := map[Action]int{}
	for _, e := range events {
		counts[e.Action]++
	}
	return counts
}
