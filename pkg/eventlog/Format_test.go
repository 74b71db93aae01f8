// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/navwar/gomirror/pkg/mirror"
	"github.com/navwar/gomirror/pkg/ts"
)

var testTimestamp = time.Date(2024, 3, 4, 15, 6, 7, 0, time.UTC)

func TestFileName(t *testing.T) {
	assert.Equal(t, "photos_logs.log", FileName("/home/user/photos"))
	assert.Equal(t, "photos_logs.log", FileName("/home/user/photos/"))
	assert.Equal(t, "root_logs.log", FileName("/"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "03/04/2024 15:06:07: Created sub/a.txt", Format(mirror.Event{
		Timestamp:    testTimestamp,
		Action:       mirror.ActionCreated,
		RelativePath: "sub/a.txt",
	}, ts.DefaultLayout, time.UTC))

	assert.Equal(t, "2024-03-04T15:06:07Z: Deleted b.txt", Format(mirror.Event{
		Timestamp:    testTimestamp,
		Action:       mirror.ActionDeleted,
		RelativePath: "b.txt",
	}, time.RFC3339, time.UTC))

	assert.Equal(t, "2024-03-04T10:06:07-05:00: Updated b.txt", Format(mirror.Event{
		Timestamp:    testTimestamp,
		Action:       mirror.ActionUpdated,
		RelativePath: "b.txt",
	}, time.RFC3339, time.FixedZone("EST", -5*60*60)))

	assert.Equal(t, "03/04/2024 15:06:07: Error c.txt: copy: disk full", Format(mirror.Event{
		Timestamp:    testTimestamp,
		Action:       mirror.ActionError,
		RelativePath: "c.txt",
		Err: &mirror.FileOperationError{
			Op:           "copy",
			RelativePath: "c.txt",
			Err:          errors.New("disk full"),
		},
	}, ts.DefaultLayout, time.UTC))
}
