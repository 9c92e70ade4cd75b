package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrRunNotFound = errors.New("run not found")

// StoredRun is one completed model run. Request and response are kept as the
// JSON documents exchanged with the client.
type StoredRun struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	Scenario  string
	Request   string
	Response  string
}

// Store keeps run history in sqlite. Runs are write-once; nothing is fed back
// into later simulations.
type Store struct {
	db *gorm.DB
}

// New opens (and migrates) the sqlite database at path. ":memory:" keeps the
// history for the lifetime of the process.
func New(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&StoredRun{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts a run. CreatedAt is filled in when zero.
func (s *Store) Save(run *StoredRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	return s.db.Create(run).Error
}

// Get returns the run with the given id or ErrRunNotFound.
func (s *Store) Get(id string) (*StoredRun, error) {
	var run StoredRun
	err := s.db.Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]StoredRun, error) {
	var runs []StoredRun
	if err := s.db.Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
