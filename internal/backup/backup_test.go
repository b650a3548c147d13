package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('habitual_state', '{"version":2}')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func readState(t *testing.T, dbPath string) string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var value string
	if err := db.QueryRow("SELECT value FROM kv WHERE key = 'habitual_state'").Scan(&value); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return value
}

// steppingClock advances one minute per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(backupPath), mgr.GetBackupDir())
	}
	if !strings.HasPrefix(filepath.Base(backupPath), constants.BackupFilePrefix) || filepath.Ext(backupPath) != ".db" {
		t.Errorf("unexpected backup name %s", filepath.Base(backupPath))
	}
	if got := readState(t, backupPath); got != `{"version":2}` {
		t.Errorf("backup content = %q", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected an error for a missing database")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))

	var last string
	for i := 0; i < constants.MaxBackups+3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		last = p
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	if backups[0].Path != last {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, last)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	for _, name := range []string{"notes.txt", constants.BackupFilePrefix + "garbage.db", "other-20240101-1200.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected foreign files to be ignored, got %d backups", len(backups))
	}
}

func TestListBackupsNoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitual.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestParseTimestamp(t *testing.T) {
	mgr := NewManager("/tmp/habitual.db")

	tests := []struct {
		name   string
		file   string
		wantOK bool
		want   time.Time
	}{
		{"minute precision", "habitual-20240601-0930.db", true, time.Date(2024, 6, 1, 9, 30, 0, 0, time.Local)},
		{"second precision", "habitual-20240601-093015.db", true, time.Date(2024, 6, 1, 9, 30, 15, 0, time.Local)},
		{"with counter", "habitual-20240601-093015-2.db", true, time.Date(2024, 6, 1, 9, 30, 15, 0, time.Local)},
		{"wrong suffix", "habitual-20240601-0930.json", false, time.Time{}},
		{"wrong prefix", "backup-20240601-0930.db", false, time.Time{}},
		{"bad stamp", "habitual-yesterday.db", false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mgr.parseTimestamp(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("parseTimestamp(%q) ok = %v, want %v", tt.file, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := db.Exec(`UPDATE kv SET value = '{"version":2,"changed":true}'`); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	db.Close()

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := readState(t, dbPath); got != `{"version":2}` {
		t.Errorf("restored content = %q", got)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if got := readState(t, safety); got != `{"version":2,"changed":true}` {
		t.Errorf("safety backup content = %q", got)
	}
}

func TestRestoreBackupRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not sqlite"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected an invalid backup to be rejected")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "none.db")); err == nil {
		t.Error("expected a missing backup to be rejected")
	}
	if got := readState(t, dbPath); got != `{"version":2}` {
		t.Errorf("database changed after failed restore: %q", got)
	}
}

func TestJSONStoreBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.json")
	if err := os.WriteFile(path, []byte(`{"habitual_state":{"version":2}}`), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	mgr := NewManager(path)
	mgr.now = steppingClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected .json backup, got %s", backupPath)
	}

	if err := os.WriteFile(path, []byte(`{"habitual_state":{"version":2,"x":1}}`), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"habitual_state":{"version":2}}` {
		t.Errorf("restored content = %q", data)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected a corrupt JSON store to fail backup")
	}
}
