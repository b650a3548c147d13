package sqlite

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTableExists(t *testing.T) {
	store := setupTestStore(t)

	tests := []struct {
		name  string
		table string
		want  bool
	}{
		{"kv table", "kv", true},
		{"case insensitive", "KV", true},
		{"reminder log", "reminder_log", true},
		{"missing", "nonexistent_table", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.tableExists(tt.table)
			if err != nil {
				t.Fatalf("tableExists() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("tableExists(%q) = %v, want %v", tt.table, got, tt.want)
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "init") {
		t.Errorf("expected not-initialized error, got %v", err)
	}
}

func TestLoadIncompleteSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE other (id INTEGER)"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	db.Close()

	store := NewStore(path)
	defer store.Close()
	if err := store.Load(); err == nil || !strings.Contains(err.Error(), "migrate") {
		t.Errorf("expected incomplete schema error, got %v", err)
	}
}

func TestStateRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	data, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if data != nil {
		t.Errorf("expected no state on a fresh store, got %q", data)
	}

	for _, doc := range []string{`{"version":2}`, `{"version":2,"brain_dump":"x"}`} {
		if err := store.SaveState([]byte(doc)); err != nil {
			t.Fatalf("SaveState failed: %v", err)
		}
	}

	// Reopen to make sure the value hit disk.
	path := store.GetConfigPath()
	store.Close()
	reopened := NewStore(path)
	defer reopened.Close()
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	data, err = reopened.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if string(data) != `{"version":2,"brain_dump":"x"}` {
		t.Errorf("unexpected state %q", data)
	}
}

func TestMarkReminderFired(t *testing.T) {
	store := setupTestStore(t)

	first, err := store.MarkReminderFired("h1", "2024-06-10", "08:00")
	if err != nil {
		t.Fatalf("MarkReminderFired failed: %v", err)
	}
	if !first {
		t.Error("expected first firing to be reported")
	}

	again, err := store.MarkReminderFired("h1", "2024-06-10", "08:00")
	if err != nil {
		t.Fatalf("MarkReminderFired failed: %v", err)
	}
	if again {
		t.Error("expected duplicate firing to be suppressed")
	}

	next, _ := store.MarkReminderFired("h1", "2024-06-11", "08:00")
	if !next {
		t.Error("expected a new day to fire again")
	}

	if err := store.PruneReminderLog("2024-06-11"); err != nil {
		t.Fatalf("PruneReminderLog failed: %v", err)
	}
	refired, _ := store.MarkReminderFired("h1", "2024-06-10", "08:00")
	if !refired {
		t.Error("expected pruned record to fire again")
	}
}

func TestSchemaStatus(t *testing.T) {
	store := setupTestStore(t)
	current, latest, err := store.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if current != latest || latest < 2 {
		t.Errorf("expected fully migrated schema, got %d/%d", current, latest)
	}

	n, err := store.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no pending migrations, got %d", n)
	}
}
