// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

// Sink receives events as they are produced.
type Sink interface {
	Write(e Event) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(e Event) error

func (f SinkFunc) Write(e Event) error {
	return f(e)
}
