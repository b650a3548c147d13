package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/constants"
)

// LoadState returns the stored document, or nil when nothing has been saved yet.
func (s *Store) LoadState() ([]byte, error) {
	return s.GetValue(constants.StateKey)
}

func (s *Store) SaveState(data []byte) error {
	return s.SetValue(constants.StateKey, data)
}

func (s *Store) GetValue(key string) ([]byte, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = $1", key).Scan(&value)
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
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) MarkReminderFired(habitID, day, at string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec(`
		INSERT INTO reminder_log (habit_id, day, time) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`, habitID, day, at)
	if err != nil {
		return false, fmt.Errorf("failed to record reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) PruneReminderLog(before string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("DELETE FROM reminder_log WHERE day < $1", before)
	return err
}
