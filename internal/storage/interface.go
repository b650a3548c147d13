package storage

// Provider persists the application document and the reminder log.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// State document; LoadState returns nil when nothing has been saved.
	LoadState() ([]byte, error)
	SaveState([]byte) error

	// Reminders
	MarkReminderFired(habitID, day, at string) (bool, error)
	PruneReminderLog(before string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL backends.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (current, latest int, err error)
}
