package system

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/storage"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, out := setupTestDB(t, testNow)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor command failed on healthy storage: %v\n%s", err, out.String())
	}
	got := out.String()
	for _, want := range []string{
		"✓ Storage reachable: OK",
		"✓ Schema version: OK",
		"✓ Migrations complete: OK",
		"⚠ Backups present: WARNING",
		"✓ Data validation: OK",
		"All diagnostics passed!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, out := setupTestDB(t, testNow)
	if _, err := backup.NewManager(ctx.Store.GetConfigPath()).CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("output = %q", out.String())
	}
}

func TestDoctorCmd_Unreachable(t *testing.T) {
	ctx, _, out := setupTestInitDB(t)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on uninitialized storage")
	}
	got := out.String()
	if !strings.Contains(got, "❌ Storage reachable: FAIL") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "⊘ Data validation: SKIPPED") {
		t.Errorf("dependent checks should be skipped:\n%s", got)
	}
}

func TestDoctorCmd_DanglingReferences(t *testing.T) {
	tests := []struct {
		name    string
		fix     bool
		wantErr bool
	}{
		{name: "reported", fix: false, wantErr: true},
		{name: "fixed", fix: true, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestDB(t, testNow)

			st := ctx.State.State()
			for i := range st.Habits {
				if st.Habits[i].ID == "h2" {
					st.Habits[i].StackedAfterID = "deleted-habit"
				}
			}
			data, err := json.Marshal(st)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if err := ctx.Store.SaveState(data); err != nil {
				t.Fatalf("SaveState failed: %v", err)
			}

			err = (&DoctorCmd{Fix: tt.fix}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v\n%s", err, tt.wantErr, out.String())
			}
			if !tt.fix {
				if !strings.Contains(out.String(), "stacked after unknown habit deleted-habit") {
					t.Errorf("output = %q", out.String())
				}
				return
			}
			h, _ := state.HabitByID(ctx.State.State(), "h2")
			if h.StackedAfterID != "" {
				t.Errorf("stacking link was not cleared: %q", h.StackedAfterID)
			}
			if !strings.Contains(out.String(), "fixed:") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestCheckHabitHistory(t *testing.T) {
	ctx, _ := setupTestDB(t, testNow)
	if err := checkHabitHistory(ctx); err != nil {
		t.Fatalf("default data should pass: %v", err)
	}

	st := ctx.State.State()
	raw, _ := json.Marshal(st)
	broken := strings.Replace(string(raw), `"history":{`, `"history":{"12-06-2024":1,`, 1)
	if err := ctx.Store.SaveState([]byte(broken)); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if err := ctx.State.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := checkHabitHistory(ctx); err == nil {
		t.Error("expected an error for a malformed day key")
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, out := setupTestDB(t, testNow)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date.") {
		t.Errorf("output = %q", out.String())
	}

	jsonStore := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitual.json"))
	if err := jsonStore.Init(); err != nil {
		t.Fatalf("failed to init json store: %v", err)
	}
	jsonCtx := cli.NewContext(jsonStore)
	jsonOut := &bytes.Buffer{}
	jsonCtx.Out = jsonOut
	if err := (&MigrateCmd{}).Run(jsonCtx); err != nil {
		t.Fatalf("migrate on json storage failed: %v", err)
	}
	if !strings.Contains(jsonOut.String(), "Nothing to migrate.") {
		t.Errorf("output = %q", jsonOut.String())
	}
}
