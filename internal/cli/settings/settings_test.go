package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	// 02:30 on 2024-06-12
	now := time.Date(2024, 6, 12, 2, 30, 0, 0, time.Local)
	ctx := cli.NewContext(store, state.WithClock(func() time.Time { return now }))
	out := &bytes.Buffer{}
	ctx.Out = out
	if err := ctx.Load(); err != nil {
		t.Fatalf("failed to load state: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, out, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		List: true,
	}

	err := cmd.Run(ctx)
	if err != nil {
		t.Errorf("settings list failed: %v", err)
	}
	for _, want := range []string{"Day End Time:          00:00", "Effective Today:       2024-06-12", "Notifications Enabled: true"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_UpdateDayEndTime(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	value := "03:00"
	cmd := &SettingsCmd{
		DayEndTime: &value,
	}

	err := cmd.Run(ctx)
	if err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	if got := ctx.State.State().Settings.DayEndTime; got != value {
		t.Errorf("expected DayEndTime to be %s, got %s", value, got)
	}
	if got := ctx.State.Today(); got != "2024-06-11" {
		t.Errorf("expected today to be 2024-06-11 inside the grace window, got %s", got)
	}
}

func TestSettingsCmd_UpdateNotifications(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	initialValue := ctx.State.State().Settings.NotificationsEnabled
	newValue := !initialValue
	cmd := &SettingsCmd{
		NotificationsEnabled: &newValue,
	}

	err := cmd.Run(ctx)
	if err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	if got := ctx.State.State().Settings.NotificationsEnabled; got != newValue {
		t.Errorf("expected NotificationsEnabled to be %v, got %v", newValue, got)
	}
}

func TestSettingsCmd_InvalidValues(t *testing.T) {
	badTime := "25:00"
	badZone := "Mars/Olympus"

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{name: "day end time", cmd: SettingsCmd{DayEndTime: &badTime}},
		{name: "timezone", cmd: SettingsCmd{Timezone: &badZone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, cleanup := setupTestDB(t)
			defer cleanup()

			before := ctx.State.State().Settings
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error, got nil")
			}
			if after := ctx.State.State().Settings; after != before {
				t.Errorf("settings changed after a failed update: %+v", after)
			}
		})
	}
}

func TestSettingsCmd_UpdateMultipleSettings(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	dayEnd := "01:00"
	zone := "UTC"
	notifications := false

	cmd := &SettingsCmd{
		DayEndTime:           &dayEnd,
		Timezone:             &zone,
		NotificationsEnabled: &notifications,
	}

	err := cmd.Run(ctx)
	if err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	// Verify all changes survive a reload
	if err := ctx.State.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	settings := ctx.State.State().Settings
	if settings.DayEndTime != dayEnd {
		t.Errorf("expected DayEndTime to be %s, got %s", dayEnd, settings.DayEndTime)
	}
	if settings.Timezone != zone {
		t.Errorf("expected Timezone to be %s, got %s", zone, settings.Timezone)
	}
	if settings.NotificationsEnabled != notifications {
		t.Errorf("expected NotificationsEnabled to be %v, got %v", notifications, settings.NotificationsEnabled)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Errorf("settings without flags failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSettingsCmd_SetByKey(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]string
		wantErr bool
		check   func(t *testing.T, ctx *cli.Context)
	}{
		{
			name: "day end and notifications",
			set:  map[string]string{"day_end_time": "02:00", "notifications_enabled": "false"},
			check: func(t *testing.T, ctx *cli.Context) {
				s := ctx.State.State().Settings
				if s.DayEndTime != "02:00" || s.NotificationsEnabled {
					t.Errorf("unexpected settings %+v", s)
				}
				if got := ctx.State.Today(); got != "2024-06-12" {
					t.Errorf("today = %s, want 2024-06-12 after the 02:00 rollover", got)
				}
			},
		},
		{
			name: "timezone",
			set:  map[string]string{"timezone": "UTC"},
			check: func(t *testing.T, ctx *cli.Context) {
				if got := ctx.State.State().Settings.Timezone; got != "UTC" {
					t.Errorf("timezone = %q", got)
				}
			},
		},
		{name: "unknown key", set: map[string]string{"theme": "dark"}, wantErr: true},
		{name: "bad bool", set: map[string]string{"notifications_enabled": "sometimes"}, wantErr: true},
		{name: "bad time", set: map[string]string{"day_end_time": "25:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, cleanup := setupTestDB(t)
			defer cleanup()

			before := ctx.State.State().Settings
			err := (&SettingsCmd{Set: tt.set}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if after := ctx.State.State().Settings; after != before {
					t.Errorf("settings changed after a failed update: %+v", after)
				}
				return
			}
			tt.check(t, ctx)
		})
	}
}
