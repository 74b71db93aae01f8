// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/navwar/gomirror/pkg/mirror"
	"github.com/navwar/gomirror/pkg/ts"
)

// FileSink appends event lines to a rotating log file.
type FileSink struct {
	path     string
	layout   ts.Layout
	location *time.Location
	fallback io.Writer

	mutex  sync.Mutex
	writer *lumberjack.Logger
}

// NewFileSink creates the log file if it does not exist and returns a sink appending to it.
func NewFileSink(input *NewFileSinkInput) (*FileSink, error) {
	if input.LogDirectory == "" {
		return nil, errors.New("log directory cannot be empty")
	}
	if input.SourceDirectory == "" {
		return nil, errors.New("source directory cannot be empty")
	}

	path := filepath.Join(input.LogDirectory, FileName(input.SourceDirectory))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating log file at %q: %w", path, err)
	}
	err = f.Close()
	if err != nil {
		return nil, fmt.Errorf("error closing log file at %q: %w", path, err)
	}

	layout := input.Layout
	if layout == "" {
		layout = ts.DefaultLayout
	}

	fallback := input.Fallback
	if fallback == nil {
		fallback = os.Stderr
	}

	return &FileSink{
		path:     path,
		layout:   layout,
		location: input.Location,
		fallback: fallback,
		writer: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    input.MaxSize,
			MaxBackups: input.MaxBackups,
			MaxAge:     input.MaxAge,
			Compress:   input.Compress,
			LocalTime:  true,
		},
	}, nil
}

// Path returns the path of the active log file.
func (s *FileSink) Path() string {
	return s.path
}

// Write appends the event to the log file.
// If the file cannot be written, then the line goes to the fallback writer
// and a *SinkError is returned.
func (s *FileSink) Write(e mirror.Event) error {
	line := Format(e, s.layout, s.location) + "\n"

	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, err := s.writer.Write([]byte(line))
	if err != nil {
		_, _ = io.WriteString(s.fallback, line)
		return &SinkError{Path: s.path, Err: err}
	}
	return nil
}

func (s *FileSink) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.writer.Close()
}
