// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package schedule

// State is the phase of a scheduler.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateWaiting
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateWaiting:
		return "waiting"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}
