package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

type Context struct {
	Store storage.Provider
	State *state.Store
	Out   io.Writer
	In    io.Reader
}

// NewContext wires a state store over the storage provider. opts are passed
// to the state store.
func NewContext(store storage.Provider, opts ...state.Option) *Context {
	return &Context{
		Store: store,
		State: state.New(store, opts...),
		Out:   os.Stdout,
		In:    os.Stdin,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Load opens the store and reads the application state.
func (c *Context) Load() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	return c.State.Load()
}

// Dispatch applies a state command.
func (c *Context) Dispatch(cmd state.Command) (models.AppState, error) {
	return c.State.Dispatch(cmd)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !storage.IsFileBacked(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit finds a habit by ID, name or unique ID prefix.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	h, ok := state.FindHabit(c.State.State(), ref)
	if !ok {
		return models.Habit{}, fmt.Errorf("%w: %q", state.ErrHabitNotFound, ref)
	}
	return h, nil
}

// ResolveDay turns "", "today", "yesterday" or YYYY-MM-DD into a day key.
// "today" is the effective day, honouring the configured day end time.
func (c *Context) ResolveDay(day string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(day)) {
	case "", "today":
		return c.State.Today(), nil
	case "yesterday":
		today, err := utils.ParseDateInLocation(c.State.Today(), time.UTC)
		if err != nil {
			return "", err
		}
		return utils.DayKey(utils.AddDays(today, -1)), nil
	}
	if _, err := time.Parse(constants.DateFormat, day); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return day, nil
}

// ResolveDate is ResolveDay as a midnight time in the configured timezone.
func (c *Context) ResolveDate(day string) (time.Time, error) {
	key, err := c.ResolveDay(day)
	if err != nil {
		return time.Time{}, err
	}
	return utils.ParseDateInLocation(key, c.State.Now().Location())
}

// Confirm asks a yes/no question on In; anything but y/yes declines.
func (c *Context) Confirm(prompt string) bool {
	c.Printf("%s [y/N]: ", prompt)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	var response string
	if _, err := fmt.Fscanln(in, &response); err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
