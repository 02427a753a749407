// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"path/filepath"

	"github.com/promptvita/promptpro/internal/config"
)

// Backend names accepted in storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// File names inside the storage directory.
const (
	FileName   = "storage.json"
	SQLiteName = "storage.db"
)

// Store is a flat string key/value store. Implementations are safe for
// concurrent use within one process and tolerate other processes writing the
// same store.
type Store interface {
	// Get returns the value for key. A missing key yields ErrKeyNotFound.
	Get(key string) (string, error)

	// Set stores value under key.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Path is the on-disk location watched for external changes.
	Path() string

	// Close releases resources.
	Close() error
}

// Open creates the store selected by cfg. An empty cfg.Dir means the config
// directory.
func Open(cfg config.StorageConfig) (Store, error) {
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = config.ConfigDir()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(filepath.Join(dir, FileName))
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, SQLiteName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrKeyNotFound is returned when a key doesn't exist.
// Use errors.Is(err, ErrKeyNotFound) to check for this error.
var ErrKeyNotFound = &StorageError{Message: "key not found"}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = &StorageError{Message: "store is closed"}

// StorageError represents a storage-related error.
// It implements the error interface and can be compared using errors.Is.
type StorageError struct {
	Message string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing storage errors.
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
