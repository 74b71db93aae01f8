// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"fmt"
	"time"
)

// Config is the resolved configuration of a mirror.
// All directories are absolute and exist before synchronization begins.
type Config struct {
	SourceDirectory  string
	ReplicaDirectory string
	LogDirectory     string
	Interval         time.Duration
}

func (c Config) String() string {
	return fmt.Sprintf(
		"Source Directory: %s\nReplica Directory: %s\nLog Directory: %s\nCheck Interval: %s",
		c.SourceDirectory,
		c.ReplicaDirectory,
		c.LogDirectory,
		c.Interval)
}
