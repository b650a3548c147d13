package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.Local)
	ctx := cli.NewContext(store, state.WithClock(func() time.Time { return now }))
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")
	if err := ctx.Load(); err != nil {
		t.Fatalf("failed to load state: %v", err)
	}
	if err := ctx.State.Save(); err != nil {
		t.Fatalf("failed to save state: %v", err)
	}
	return ctx, store, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, store, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: habitual-") {
		t.Errorf("output = %q", out.String())
	}

	backups, err := backup.NewManager(store.GetConfigPath()).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("output = %q", out.String())
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, store, out := setupTestDB(t)

	mgr := backup.NewManager(store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := ctx.Dispatch(state.DeleteHabit{ID: "h1"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
		t.Fatalf("declined restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("output = %q", out.String())
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Created backup of current data") {
		t.Errorf("output = %q", out.String())
	}

	if err := ctx.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, ok := state.HabitByID(ctx.State.State(), "h1"); !ok {
		t.Error("restored data is missing the deleted habit")
	}
}

func TestBackupRestoreCmd_NotFound(t *testing.T) {
	ctx, _, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "habitual-19990101-0000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}
