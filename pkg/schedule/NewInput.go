// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package schedule

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/navwar/gomirror/pkg/log"
)

type NewInput struct {
	Interval time.Duration
	Clock    clockwork.Clock // defaults to the real clock
	Logger   log.Logger
}
