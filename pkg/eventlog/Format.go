// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/navwar/gomirror/pkg/mirror"
	"github.com/navwar/gomirror/pkg/ts"
)

// FileName returns the name of the event log file for a source directory.
func FileName(sourceDirectory string) string {
	base := filepath.Base(filepath.Clean(sourceDirectory))
	if base == string(filepath.Separator) || base == "." {
		base = "root"
	}
	return base + "_logs.log"
}

// Format renders an event as a single line without a trailing newline.
// The location defaults to local time when nil.
func Format(e mirror.Event, layout ts.Layout, location *time.Location) string {
	if location == nil {
		location = time.Local
	}
	line := fmt.Sprintf("%s: %s %s", layout.Format(e.Timestamp.In(location)), e.Action, filepath.ToSlash(e.RelativePath))
	if e.Action == mirror.ActionError {
		line += ": " + e.Detail()
	}
	return line
}
