// Package storage provides the storage interface and implementations.
package storage

import (
	"github.com/mandalnilabja/bioalign/internal/storage/models"
	"github.com/mandalnilabja/bioalign/internal/storage/sqlite"
)

// Re-export types from models package for convenience
type (
	RequestLog = models.RequestLog
	LogFilter  = models.LogFilter
)

// Re-export errors from sqlite package
var (
	ErrNotFound      = sqlite.ErrNotFound
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// Storage defines the interface for persistent data storage
type Storage interface {
	// Request logging operations
	LogRequest(log *models.RequestLog) error
	GetRequestLogs(filter models.LogFilter) ([]*models.RequestLog, error)
	CountRequestLogs() (int64, error)
	DeleteRequestLogs(olderThan string) (int64, error)

	// Admin password operations
	GetAdminPasswordHash() (string, error)
	SetAdminPasswordHash(hash string) error
	HasAdminPassword() (bool, error)

	// Maintenance operations
	Ping() error
	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
// This is the main factory function for creating storage
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}
