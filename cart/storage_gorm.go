package cart

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// entry is one key-value row in the local cart database.
type entry struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// GormStorage is the durable Storage, a key-value table in a local SQLite
// file. Change notification covers views within this process; a second
// process on the same file must poll.
type GormStorage struct {
	broadcaster
	db *gorm.DB
}

// OpenStorage opens (creating if needed) the cart database at path.
func OpenStorage(path string) (*GormStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cart storage: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate cart storage: %w", err)
	}
	return &GormStorage{db: db}, nil
}

func (s *GormStorage) Get(key string) (string, bool, error) {
	var e entry
	err := s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *GormStorage) Set(key, value, origin string) error {
	if err := s.db.Save(&entry{Key: key, Value: value, UpdatedAt: time.Now()}).Error; err != nil {
		return err
	}
	s.notify(key, origin)
	return nil
}
