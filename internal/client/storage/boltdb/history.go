package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/linkspark/internal/client/storage"
	"github.com/iudanet/linkspark/internal/models"
)

// keyHistory единственный ключ, под которым хранится весь список
const keyHistory = "linkspark_history"

// LoadHistory returns the stored history list, newest first
func (s *Storage) LoadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	entries := []models.HistoryEntry{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketHistory)
		if bucket == nil {
			return fmt.Errorf("history bucket not found")
		}

		data := bucket.Get([]byte(keyHistory))
		if data == nil {
			// Истории еще нет
			return nil
		}

		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrHistoryCorrupted, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// SaveHistory replaces the stored history list in a single transaction
func (s *Storage) SaveHistory(ctx context.Context, entries []models.HistoryEntry) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	// Сериализуем до открытия транзакции
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketHistory)
		if bucket == nil {
			return fmt.Errorf("history bucket not found")
		}

		if err := bucket.Put([]byte(keyHistory), data); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}

		return nil
	})
}

// ClearHistory removes the stored history list
func (s *Storage) ClearHistory(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketHistory)
		if bucket == nil {
			return fmt.Errorf("history bucket not found")
		}

		if err := bucket.Delete([]byte(keyHistory)); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}

		return nil
	})
}

// Проверка соответствия интерфейсу
var _ storage.HistoryStorage = (*Storage)(nil)
