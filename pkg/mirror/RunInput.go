// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/navwar/gomirror/pkg/log"
)

type RunInput struct {
	Config     Config
	FileSystem afero.Fs        // defaults to the operating system's filesystem
	Sink       Sink            // optional
	Logger     log.Logger      // optional
	Clock      clockwork.Clock // defaults to the real clock, used for event timestamps
	Debug      bool            // log every file operation
}
