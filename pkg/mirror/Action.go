// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

// Action is the kind of work recorded by an event.
type Action string

const (
	ActionCreated Action = "Created"
	ActionUpdated Action = "Updated"
	ActionDeleted Action = "Deleted"
	ActionError   Action = "Error"
)

// Actions lists every action in rendering order.
var Actions = []Action{
	ActionCreated,
	ActionUpdated,
	ActionDeleted,
	ActionError,
}

// ParseAction returns the action with the given name.
func ParseAction(s string) (Action, bool) {
	for _, a := range Actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}
