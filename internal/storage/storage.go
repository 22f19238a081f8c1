package storage

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// blob is a single persisted entry: one key, one JSON text value. The whole
// journal state lives in this flat key-value table.
type blob struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// Store is the flat key-value blob store backing every record store.
type Store struct {
	db *gorm.DB
}

// NewStore opens the database at the given DSN and migrates the blob table.
func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&blob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the JSON text stored under key. The second return value is
// false when the key has never been written.
func (s *Store) Get(key string) (string, bool, error) {
	var b blob
	err := s.db.First(&b, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return b.Value, true, nil
}

// Put overwrites the JSON text stored under key in a single upsert.
func (s *Store) Put(key, value string) error {
	b := blob{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&b).Error
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry stored under key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&blob{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}
