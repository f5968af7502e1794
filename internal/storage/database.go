package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Document is one named JSON document row
type Document struct {
	Name      string `gorm:"primary_key"`
	Body      string `gorm:"type:text"`
	UpdatedAt time.Time
}

// DocumentStore keeps documents in a single SQL table through gorm
type DocumentStore struct {
	db *gorm.DB
}

// OpenDocumentStore connects to the database and migrates the documents table
func OpenDocumentStore(driver, dsn string) (*DocumentStore, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		// every new sqlite connection to :memory: is a separate database
		db.DB().SetMaxOpenConns(1)
	} else {
		db.DB().SetMaxIdleConns(10)
		db.DB().SetMaxOpenConns(100)
		db.DB().SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&Document{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}

	return &DocumentStore{db: db}, nil
}

// Get implements Store
func (s *DocumentStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if err := checkName(name); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var doc Document
	err := s.db.Where("name = ?", name).First(&doc).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.Body), true, nil
}

// Put implements Store
func (s *DocumentStore) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Save(&Document{Name: name, Body: string(data)}).Error
}

// Close implements Store
func (s *DocumentStore) Close() error {
	return s.db.Close()
}
