// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gomirror/pkg/mirror"
	"github.com/navwar/gomirror/pkg/ts"
)

func TestFileSink(t *testing.T) {
	dir := t.TempDir()

	sink, err := NewFileSink(&NewFileSinkInput{
		LogDirectory:    dir,
		SourceDirectory: "/data/photos",
		Location:        time.UTC,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photos_logs.log"), sink.Path())

	// the file exists before the first event
	_, err = os.Stat(sink.Path())
	require.NoError(t, err)

	require.NoError(t, sink.Write(mirror.Event{Timestamp: testTimestamp, Action: mirror.ActionCreated, RelativePath: "a.jpg"}))
	require.NoError(t, sink.Write(mirror.Event{Timestamp: testTimestamp, Action: mirror.ActionDeleted, RelativePath: "b.jpg"}))
	require.NoError(t, sink.Close())

	b, err := os.ReadFile(sink.Path())
	require.NoError(t, err)
	assert.Equal(t, "03/04/2024 15:06:07: Created a.jpg\n03/04/2024 15:06:07: Deleted b.jpg\n", string(b))

	// a second sink appends to the same file
	sink, err = NewFileSink(&NewFileSinkInput{
		LogDirectory:    dir,
		SourceDirectory: "/data/photos",
		Layout:          ts.Layout(time.DateOnly),
		Location:        time.UTC,
	})
	require.NoError(t, err)
	require.NoError(t, sink.Write(mirror.Event{Timestamp: testTimestamp, Action: mirror.ActionUpdated, RelativePath: "a.jpg"}))
	require.NoError(t, sink.Close())

	b, err = os.ReadFile(sink.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2024-03-04: Updated a.jpg", lines[2])
}

func TestFileSinkInvalid(t *testing.T) {
	_, err := NewFileSink(&NewFileSinkInput{SourceDirectory: "/data/photos"})
	assert.Error(t, err)

	_, err = NewFileSink(&NewFileSinkInput{LogDirectory: t.TempDir()})
	assert.Error(t, err)

	_, err = NewFileSink(&NewFileSinkInput{
		LogDirectory:    filepath.Join(t.TempDir(), "missing"),
		SourceDirectory: "/data/photos",
	})
	assert.Error(t, err)
}

func TestFileSinkFallback(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.Mkdir(dir, 0755))

	fallback := &bytes.Buffer{}
	sink, err := NewFileSink(&NewFileSinkInput{
		LogDirectory:    dir,
		SourceDirectory: "/data/photos",
		Location:        time.UTC,
		Fallback:        fallback,
	})
	require.NoError(t, err)
	defer sink.Close()

	// replace the log directory with a regular file so the log file cannot be opened
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte{}, 0644))

	err = sink.Write(mirror.Event{Timestamp: testTimestamp, Action: mirror.ActionCreated, RelativePath: "a.jpg"})
	var sinkError *SinkError
	require.True(t, errors.As(err, &sinkError))
	assert.Equal(t, sink.Path(), sinkError.Path)
	assert.Equal(t, "03/04/2024 15:06:07: Created a.jpg\n", fallback.String())
}

type failingSink struct{}

func (failingSink) Write(e mirror.Event) error {
	return errors.New("unavailable")
}

func TestMultiSink(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	m := MultiSink{
		NewWriterSink(first, ts.DefaultLayout, time.UTC),
		failingSink{},
		NewWriterSink(second, time.RFC3339, time.UTC),
	}

	err := m.Write(mirror.Event{Timestamp: testTimestamp, Action: mirror.ActionCreated, RelativePath: "a.jpg"})
	assert.EqualError(t, err, "unavailable")
	assert.Equal(t, "03/04/2024 15:06:07: Created a.jpg\n", first.String())
	assert.Equal(t, "2024-03-04T15:06:07Z: Created a.jpg\n", second.String())

	assert.NoError(t, MultiSink{}.Write(mirror.Event{}))
}
