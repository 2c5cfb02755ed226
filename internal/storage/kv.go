package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Get returns the value stored under key. ok is false when the key is unset.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// BestScore keeps a best score as a decimal string under one key.
type BestScore struct {
	store *Store
	key   string
}

// NewBestScore returns a best score entry stored under key.
func NewBestScore(store *Store, key string) *BestScore {
	return &BestScore{store: store, key: key}
}

// LoadBest returns the stored best score, 0 when unset.
func (b *BestScore) LoadBest() (int, error) {
	raw, ok, err := b.store.Get(b.key)
	if err != nil || !ok {
		return 0, err
	}
	best, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("storage: best score %q is not a number: %w", raw, err)
	}
	return best, nil
}

// SaveBest stores score unless the entry already holds a higher one.
// Several sessions share the entry, so the comparison happens in SQL.
func (b *BestScore) SaveBest(score int) error {
	_, err := b.store.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		 WHERE CAST(kv.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		b.key, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", b.key, err)
	}
	return nil
}
