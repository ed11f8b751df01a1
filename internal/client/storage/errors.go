package storage

import "errors"

// Common client storage errors
var (
	// ErrHistoryCorrupted indicates that the persisted history cannot be decoded
	ErrHistoryCorrupted = errors.New("history data is corrupted")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
