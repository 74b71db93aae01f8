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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventDetail(t *testing.T) {
	assert.Equal(t, "", Event{Action: ActionCreated, RelativePath: "a.txt"}.Detail())

	e := Event{
		Action:       ActionError,
		RelativePath: "a.txt",
		Err: &FileOperationError{
			Op:           "copy",
			RelativePath: "a.txt",
			Err:          errors.New("disk full"),
		},
	}
	assert.Equal(t, "copy: disk full", e.Detail())
	assert.Equal(t, `error during copy of "a.txt": disk full`, e.Err.Error())

	assert.Equal(t, "boom", Event{Action: ActionError, Err: errors.New("boom")}.Detail())
}

func TestCount(t *testing.T) {
	counts := Count([]Event{
		{Action: ActionCreated},
		{Action: ActionCreated},
		{Action: ActionDeleted},
		{Action: ActionError},
	})
	assert.Equal(t, 2, counts[ActionCreated])
	assert.Equal(t, 0, counts[ActionUpdated])
	assert.Equal(t, 1, counts[ActionDeleted])
	assert.Equal(t, 1, counts[ActionError])
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		parsed, ok := ParseAction(string(a))
		assert.True(t, ok)
		assert.Equal(t, a, parsed)
	}
	_, ok := ParseAction("Moved")
	assert.False(t, ok)
}

func TestIsNotExist(t *testing.T) {
	assert.True(t, isNotExist(os.ErrNotExist))
	assert.True(t, isNotExist(fmt.Errorf("wrapped: %w", &os.PathError{Op: "stat", Path: "/a", Err: os.ErrNotExist})))
	assert.False(t, isNotExist(os.ErrPermission))
	assert.False(t, isNotExist(nil))
}
