// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package eventlog

import (
	"errors"

	"github.com/navwar/gomirror/pkg/mirror"
)

// MultiSink writes every event to each of its sinks in order.
// A failing sink does not prevent the remaining sinks from receiving the event.
type MultiSink []mirror.Sink

func (m MultiSink) Write(e mirror.Event) error {
	errs := []error{}
	for _, s := range m {
		if err := s.Write(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
