package state

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// SetDayEndTime sets when "today" rolls over, as HH:MM.
type SetDayEndTime struct {
	Value string
}

func (c SetDayEndTime) Apply(st *models.AppState, _ Env) error {
	if !utils.ValidateTimeFormat(c.Value) {
		return fmt.Errorf("%w: day end time must be HH:MM, got %q", ErrInvalidArgument, c.Value)
	}
	st.Settings.DayEndTime = c.Value
	return nil
}

// SetTimezone sets the IANA zone used for "now".
type SetTimezone struct {
	Value string
}

func (c SetTimezone) Apply(st *models.AppState, _ Env) error {
	if !utils.ValidateTimezone(c.Value) {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidArgument, c.Value)
	}
	st.Settings.Timezone = c.Value
	return nil
}

type SetNotifications struct {
	Enabled bool
}

func (c SetNotifications) Apply(st *models.AppState, _ Env) error {
	st.Settings.NotificationsEnabled = c.Enabled
	return nil
}

// SetWaterIntake stores the glasses of water drunk on Day.
type SetWaterIntake struct {
	Day     string
	Glasses int
}

func (c SetWaterIntake) Apply(st *models.AppState, _ Env) error {
	if err := checkDay(c.Day); err != nil {
		return err
	}
	if c.Glasses < 0 {
		return fmt.Errorf("%w: water intake cannot be negative", ErrInvalidArgument)
	}
	if c.Glasses == 0 {
		delete(st.WaterIntake, c.Day)
		return nil
	}
	st.WaterIntake[c.Day] = c.Glasses
	return nil
}

type SetBrainDump struct {
	Text string
}

func (c SetBrainDump) Apply(st *models.AppState, _ Env) error {
	st.BrainDump = strings.TrimRight(c.Text, "\n")
	return nil
}

// Batch applies several commands as one transition.
type Batch []Command

func (b Batch) Apply(st *models.AppState, env Env) error {
	for _, cmd := range b {
		if err := cmd.Apply(st, env); err != nil {
			return err
		}
	}
	return nil
}
