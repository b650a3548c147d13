package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "sub", "habitual.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil || !strings.Contains(err.Error(), "init") {
		t.Errorf("expected not-initialized error, got %v", err)
	}
}

func TestJSONStoreState(t *testing.T) {
	store := setupJSONStore(t)

	data, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if data != nil {
		t.Errorf("expected empty state, got %q", data)
	}

	if err := store.SaveState([]byte(`{"version":2}`)); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	data, err = reopened.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if string(data) != `{"version":2}` {
		t.Errorf("LoadState() = %q", data)
	}

	info, err := os.Stat(store.GetConfigPath())
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}
}

func TestJSONStoreKeepsInvalidDocument(t *testing.T) {
	store := setupJSONStore(t)
	if err := store.SaveState([]byte("not json")); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	data, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if string(data) != `"not json"` {
		t.Errorf("LoadState() = %q", data)
	}
}

func TestJSONStoreInitExisting(t *testing.T) {
	store := setupJSONStore(t)
	if err := store.SaveState([]byte(`{"version":2}`)); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	again := NewJSONStore(store.GetConfigPath())
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if data, _ := again.LoadState(); string(data) != `{"version":2}` {
		t.Errorf("Init must not wipe existing state, got %q", data)
	}
}

func TestJSONStoreReminderLog(t *testing.T) {
	store := setupJSONStore(t)

	tests := []struct {
		name    string
		habitID string
		day     string
		at      string
		want    bool
	}{
		{"first", "h1", "2024-06-10", "08:00", true},
		{"duplicate", "h1", "2024-06-10", "08:00", false},
		{"other time", "h1", "2024-06-10", "20:00", true},
		{"other habit", "h2", "2024-06-10", "08:00", true},
		{"next day", "h1", "2024-06-11", "08:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.MarkReminderFired(tt.habitID, tt.day, tt.at)
			if err != nil {
				t.Fatalf("MarkReminderFired failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("MarkReminderFired() = %v, want %v", got, tt.want)
			}
		})
	}

	if err := store.PruneReminderLog("2024-06-11"); err != nil {
		t.Fatalf("PruneReminderLog failed: %v", err)
	}
	if len(store.file.Reminders) != 1 {
		t.Errorf("expected 1 remaining reminder record, got %d", len(store.file.Reminders))
	}
}
