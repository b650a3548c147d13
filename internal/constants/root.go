package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConflictType represents the type of validation conflict
type ConflictType string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	Version            = "v0.1.0"

	// StateKey is the key the whole application document is stored under.
	StateKey = "habitual_state"

	// StateVersion is the document version written by this build.
	StateVersion = 2

	// Environment variables
	EnvConfig       = "HABITUAL_CONFIG"
	EnvDBConnection = "HABITUAL_DB_CONNECTION"
	EnvTestPostgres = "HABITUAL_TEST_POSTGRES"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitual-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitual"

	// ReminderScanSpec is the cron spec used by the reminder watcher.
	ReminderScanSpec = "@every 30s"

	// Conflict Types
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictMissingHabitID     ConflictType = "missing_habit_id"
	ConflictInvalidGoal        ConflictType = "invalid_goal"
	ConflictInvalidFrequency   ConflictType = "invalid_frequency"
	ConflictInvalidReminder    ConflictType = "invalid_reminder"
	ConflictDanglingStack      ConflictType = "dangling_stack"
	ConflictDuplicateNodeID    ConflictType = "duplicate_node_id"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictMissingMediaID     ConflictType = "missing_media_id"
)

// Session States
const (
	StateHabits SessionState = iota
	StateWeek
	StateCalendar
	StateReport
	StateSchedule
	StateMedia
	StateSettings
	StateDetail
	StateAddHabit
	StateEditHabit
	StateLogValue
	StateEditSettings
	StateConfirmDelete
)

// MainViews is the number of tabbed views, StateHabits through StateSettings.
const MainViews = int(StateSettings) + 1
