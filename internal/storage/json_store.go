package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// jsonFile is the on-disk layout of a JSON store.
type jsonFile struct {
	State     json.RawMessage   `json:"habitual_state,omitempty"`
	Reminders map[string]string `json:"reminder_log,omitempty"`
}

type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.file = &jsonFile{Reminders: map[string]string{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.file = &jsonFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.file.Reminders == nil {
		s.file.Reminders = map[string]string{}
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadState() ([]byte, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	if len(s.file.State) == 0 {
		return nil, nil
	}
	return []byte(s.file.State), nil
}

// SaveState stores the document verbatim when it is valid JSON, otherwise as a string.
func (s *JSONStore) SaveState(data []byte) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	if json.Valid(data) {
		s.file.State = append(json.RawMessage(nil), data...)
	} else {
		quoted, err := json.Marshal(string(data))
		if err != nil {
			return err
		}
		s.file.State = quoted
	}
	return s.save()
}

func reminderKey(habitID, day, at string) string {
	return day + "|" + at + "|" + habitID
}

func (s *JSONStore) MarkReminderFired(habitID, day, at string) (bool, error) {
	if s.file == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	key := reminderKey(habitID, day, at)
	if _, ok := s.file.Reminders[key]; ok {
		return false, nil
	}
	s.file.Reminders[key] = time.Now().UTC().Format(time.RFC3339)
	return true, s.save()
}

func (s *JSONStore) PruneReminderLog(before string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	changed := false
	for k := range s.file.Reminders {
		if day, _, _ := strings.Cut(k, "|"); day < before {
			delete(s.file.Reminders, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
