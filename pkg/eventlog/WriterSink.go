// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"io"
	"sync"
	"time"

	"github.com/navwar/gomirror/pkg/mirror"
	"github.com/navwar/gomirror/pkg/ts"
)

// WriterSink writes event lines to an io.Writer, such as the console.
type WriterSink struct {
	mutex    sync.Mutex
	writer   io.Writer
	layout   ts.Layout
	location *time.Location
}

func NewWriterSink(w io.Writer, layout ts.Layout, location *time.Location) *WriterSink {
	if layout == "" {
		layout = ts.DefaultLayout
	}
	return &WriterSink{
		writer:   w,
		layout:   layout,
		location: location,
	}
}

func (s *WriterSink) Write(e mirror.Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, err := io.WriteString(s.writer, Format(e, s.layout, s.location)+"\n")
	return err
}
