package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// LoadState returns the stored document, or nil when nothing has been saved yet.
func (s *Store) LoadState() ([]byte, error) {
	return s.GetValue(constants.StateKey)
}

func (s *Store) SaveState(data []byte) error {
	return s.SetValue(constants.StateKey, data)
}

// GetValue returns nil without an error for unknown keys.
func (s *Store) GetValue(key string) ([]byte, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *Store) SetValue(key string, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// MarkReminderFired records a reminder firing and reports whether it is the first for that day.
func (s *Store) MarkReminderFired(habitID, day, at string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO reminder_log (habit_id, day, time, fired_at) VALUES (?, ?, ?, ?)`,
		habitID, day, at, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to record reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PruneReminderLog drops reminder records for days before the given day key.
func (s *Store) PruneReminderLog(before string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("DELETE FROM reminder_log WHERE day < ?", before)
	return err
}
