// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"io"
	"time"

	"github.com/navwar/gomirror/pkg/ts"
)

type NewFileSinkInput struct {
	LogDirectory    string
	SourceDirectory string
	MaxSize         int // megabytes before rotation
	MaxBackups      int
	MaxAge          int // days
	Compress        bool
	Layout          ts.Layout
	Location        *time.Location
	Fallback        io.Writer // defaults to os.Stderr
}
