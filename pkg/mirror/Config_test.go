// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigString(t *testing.T) {
	c := Config{
		SourceDirectory:  "/data/src",
		ReplicaDirectory: "/data/replica",
		LogDirectory:     "/data/logs",
		Interval:         5 * time.Minute,
	}
	assert.Equal(t, "Source Directory: /data/src\nReplica Directory: /data/replica\nLog Directory: /data/logs\nCheck Interval: 5m0s", c.String())
}
