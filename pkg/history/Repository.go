// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package history

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/navwar/gomirror/pkg/mirror"
)

// Repository stores events in a SQLite database.
type Repository struct {
	db *gorm.DB
}

// Open opens or creates the database at path and migrates its schema.
// The path ":memory:" opens a private in-memory database.
func Open(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("history database path cannot be empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening history database at %q: %w", path, err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("error retrieving connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("error migrating history database at %q: %w", path, err)
	}

	return &Repository{db: db}, nil
}

// Write stores the event.
func (r *Repository) Write(e mirror.Event) error {
	record := Record{
		Action:     string(e.Action),
		Path:       e.RelativePath,
		Detail:     e.Detail(),
		OccurredAt: e.Timestamp,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("error saving event for %q: %w", e.RelativePath, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *Repository) Recent(limit int) ([]Record, error) {
	records := []Record{}
	err := r.db.
		Order("occurred_at desc").
		Order("id desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Failed returns up to limit error records, newest first.
func (r *Repository) Failed(limit int) ([]Record, error) {
	records := []Record{}
	err := r.db.
		Where("action = ?", string(mirror.ActionError)).
		Order("occurred_at desc").
		Order("id desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Stats holds the number of stored records per action.
type Stats struct {
	Total   int64
	Actions map[mirror.Action]int64
}

func (r *Repository) Stats() (Stats, error) {
	stats := Stats{Actions: map[mirror.Action]int64{}}

	rows := []struct {
		Action string
		Count  int64
	}{}
	err := r.db.Model(&Record{}).
		Select("action, count(*) as count").
		Group("action").
		Scan(&rows).Error
	if err != nil {
		return stats, fmt.Errorf("error counting history records: %w", err)
	}

	for _, row := range rows {
		stats.Actions[mirror.Action(row.Action)] = row.Count
		stats.Total += row.Count
	}
	return stats, nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("error retrieving connection pool: %w", err)
	}
	return sqlDB.Close()
}
