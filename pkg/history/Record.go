// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package history

import (
	"time"

	"gorm.io/gorm"
)

// Record is one persisted event.
type Record struct {
	gorm.Model
	Action     string    `gorm:"not null;index"`
	Path       string    `gorm:"not null"`
	Detail     string
	OccurredAt time.Time `gorm:"not null;index"`
}
