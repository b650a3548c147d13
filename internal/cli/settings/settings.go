package settings

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/state"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DayEndTime           *string           `help:"When the day rolls over (HH:MM); before noon, earlier hours count as the previous day."`
	Timezone             *string           `help:"IANA timezone used for 'now' (or Local)."`
	NotificationsEnabled *bool             `help:"Enable or disable reminder notifications."`
	Set                  map[string]string `help:"Set settings by key, e.g. --set day_end_time=02:00. Repeatable."`
}

var labels = []struct{ key, label string }{
	{constants.SettingDayEndTime, "Day End Time"},
	{constants.SettingTimezone, "Timezone"},
	{constants.SettingNotificationsEnabled, "Notifications Enabled"},
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.State.State().Settings

	if c.List {
		values := models.SettingsToMap(settings)
		ctx.Println("Current Settings:")
		for _, l := range labels {
			ctx.Printf("  %-22s %s\n", l.label+":", values[l.key])
			if l.key == constants.SettingDayEndTime && engine.GraceMinutes(settings.DayEndTime) > 0 {
				ctx.Printf("  %-22s (until %s, 'today' is the previous day)\n", "", settings.DayEndTime)
			}
		}
		ctx.Printf("  %-22s %s\n", "Effective Today:", ctx.State.Today())
		return nil
	}

	batch, err := c.changes()
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if _, err := ctx.Dispatch(batch); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

// changes collects the typed flags and any --set pairs into one batch.
func (c *SettingsCmd) changes() (state.Batch, error) {
	var batch state.Batch
	if len(c.Set) > 0 {
		parsed, err := models.MapToSettings(c.Set)
		if err != nil {
			return nil, err
		}
		for key := range c.Set {
			switch key {
			case constants.SettingDayEndTime:
				batch = append(batch, state.SetDayEndTime{Value: parsed.DayEndTime})
			case constants.SettingTimezone:
				batch = append(batch, state.SetTimezone{Value: parsed.Timezone})
			case constants.SettingNotificationsEnabled:
				batch = append(batch, state.SetNotifications{Enabled: parsed.NotificationsEnabled})
			}
		}
	}
	if c.DayEndTime != nil {
		batch = append(batch, state.SetDayEndTime{Value: *c.DayEndTime})
	}
	if c.Timezone != nil {
		batch = append(batch, state.SetTimezone{Value: *c.Timezone})
	}
	if c.NotificationsEnabled != nil {
		batch = append(batch, state.SetNotifications{Enabled: *c.NotificationsEnabled})
	}
	return batch, nil
}
