package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// Documents written before the tagged model used camelCase keys, overloaded
// the description field and keyed daily structures Sunday-first. They are
// upgraded once, here, and never sniffed again.

type legacyMicroHabit struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	SubHabits []legacyMicroHabit `json:"subHabits"`
}

type legacyReminder struct {
	Time string `json:"time"`
	Days []int  `json:"days"`
}

type legacyHabit struct {
	ID              string                        `json:"id"`
	Name            string                        `json:"name"`
	Description     string                        `json:"description"`
	TimeOfDay       string                        `json:"timeOfDay"`
	Color           string                        `json:"color"`
	Goal            float64                       `json:"goal"`
	Increment       float64                       `json:"increment"`
	Unit            string                        `json:"unit"`
	Streak          int                           `json:"streak"`
	History         History                       `json:"history"`
	Structure       []legacyMicroHabit            `json:"structure"`
	DailyStructures map[string][]legacyMicroHabit `json:"dailyStructures"`
	Reminders       []legacyReminder              `json:"reminders"`
	StackTrigger    string                        `json:"stackTrigger"`
	StackedAfterID  string                        `json:"stackedAfterId"`
	TimerDuration   int                           `json:"timerDuration"`
}

type legacyMedia struct {
	ID            string      `json:"id"`
	Type          MediaType   `json:"type"`
	Title         string      `json:"title"`
	SeriesTitle   string      `json:"seriesTitle"`
	SeasonNumber  string      `json:"seasonNumber"`
	VolumeNumber  int         `json:"volumeNumber"`
	EpisodeNumber int         `json:"episodeNumber"`
	Image         string      `json:"image"`
	Status        MediaStatus `json:"status"`
	Rating        int         `json:"rating"`
	StartDate     string      `json:"startDate"`
	CompletedDate string      `json:"completedDate"`
	Description   string      `json:"description"`
	IsCollection  bool        `json:"isCollection"`
	ParentID      string      `json:"parentId"`
}

type legacyBlock struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	IsFixed  bool   `json:"isFixed"`
	HabitID  string `json:"habitId"`
	MediaID  string `json:"mediaId"`
}

type legacyState struct {
	Habits      []legacyHabit   `json:"habits"`
	Media       []legacyMedia   `json:"media"`
	WaterIntake int             `json:"waterIntake"`
	BrainDump   string          `json:"brainDump"`
	DailyBlocks json.RawMessage `json:"dailyBlocks"`
	DayEndTime  string          `json:"dayEndTime"`
}

var quitStartLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	time.RFC3339Nano,
	constants.DateFormat,
}

// ParseQuitStart parses the timestamp of a "Start: ..." description in loc.
func ParseQuitStart(description string, loc *time.Location) (time.Time, bool) {
	if !strings.HasPrefix(description, constants.QuitStartPrefix) {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(description, constants.QuitStartPrefix))
	for _, layout := range quitStartLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DecodeState decodes a stored document. Current documents carry a version;
// anything else is treated as the legacy camelCase shape. today is the day key
// legacy single-day values (water intake, undated blocks) are filed under.
func DecodeState(data []byte, today string, loc *time.Location) (AppState, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return AppState{}, fmt.Errorf("decoding state: %w", err)
	}

	if _, ok := probe["version"]; ok {
		var st AppState
		if err := json.Unmarshal(data, &st); err != nil {
			return AppState{}, fmt.Errorf("decoding state: %w", err)
		}
		Normalize(&st)
		return st, nil
	}

	var legacy legacyState
	if err := json.Unmarshal(data, &legacy); err != nil {
		return AppState{}, fmt.Errorf("decoding legacy state: %w", err)
	}
	st, err := upgradeLegacy(legacy, today, loc)
	if err != nil {
		return AppState{}, err
	}
	Normalize(&st)
	return st, nil
}

// Normalize fills nil collections and default settings.
func Normalize(st *AppState) {
	st.Version = constants.StateVersion
	if st.Habits == nil {
		st.Habits = []Habit{}
	}
	if st.Media == nil {
		st.Media = []MediaItem{}
	}
	if st.DailyBlocks == nil {
		st.DailyBlocks = map[string][]DailyBlock{}
	}
	if st.WaterIntake == nil {
		st.WaterIntake = map[string]int{}
	}
	for i := range st.Habits {
		if st.Habits[i].History == nil {
			st.Habits[i].History = History{}
		}
		if st.Habits[i].Frequency.Type == "" {
			st.Habits[i].Frequency = DefaultFrequency()
		}
	}
	ApplyDefaultSettings(&st.Settings)
}

func upgradeLegacy(in legacyState, today string, loc *time.Location) (AppState, error) {
	st := AppState{
		Habits:      make([]Habit, 0, len(in.Habits)),
		Media:       make([]MediaItem, 0, len(in.Media)),
		DailyBlocks: map[string][]DailyBlock{},
		WaterIntake: map[string]int{},
		BrainDump:   in.BrainDump,
		Settings: Settings{
			DayEndTime:           in.DayEndTime,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
		},
	}
	if in.WaterIntake > 0 {
		st.WaterIntake[today] = in.WaterIntake
	}

	for _, lh := range in.Habits {
		st.Habits = append(st.Habits, upgradeHabit(lh, loc))
	}

	for _, m := range in.Media {
		st.Media = append(st.Media, MediaItem{
			ID: m.ID, Type: m.Type, Title: m.Title, SeriesTitle: m.SeriesTitle,
			SeasonNumber: m.SeasonNumber, VolumeNumber: m.VolumeNumber, EpisodeNumber: m.EpisodeNumber,
			Image: m.Image, Status: m.Status, Rating: m.Rating, StartDate: m.StartDate,
			CompletedDate: m.CompletedDate, Description: m.Description,
			IsCollection: m.IsCollection, ParentID: m.ParentID,
		})
	}

	blocks, err := upgradeBlocks(in.DailyBlocks, today)
	if err != nil {
		return AppState{}, err
	}
	st.DailyBlocks = blocks

	return st, nil
}

func upgradeHabit(lh legacyHabit, loc *time.Location) Habit {
	h := Habit{
		ID:             lh.ID,
		Name:           lh.Name,
		Color:          lh.Color,
		TimeOfDay:      TimeOfDay(lh.TimeOfDay),
		Goal:           lh.Goal,
		Increment:      lh.Increment,
		Unit:           Unit(lh.Unit),
		Streak:         lh.Streak,
		History:        lh.History,
		Frequency:      DefaultFrequency(),
		Structure:      upgradeForest(lh.Structure),
		StackTrigger:   lh.StackTrigger,
		StackedAfterID: lh.StackedAfterID,
		TimerMinutes:   lh.TimerDuration,
	}
	if h.TimeOfDay != Morning && h.TimeOfDay != Evening {
		h.TimeOfDay = Anytime
	}

	if len(lh.DailyStructures) > 0 {
		h.DailyStructures = make(map[Weekday][]MicroHabit, len(lh.DailyStructures))
		for key, forest := range lh.DailyStructures {
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx > 6 {
				continue
			}
			h.DailyStructures[FromTimeWeekday(time.Weekday(idx))] = upgradeForest(forest)
		}
	}

	for _, r := range lh.Reminders {
		days := make([]Weekday, 0, len(r.Days))
		for _, d := range r.Days {
			if wd := Weekday(d); wd.Valid() {
				days = append(days, wd)
			}
		}
		h.Reminders = append(h.Reminders, Reminder{Time: r.Time, Days: days})
	}

	switch {
	case h.Unit.IsWeightUnit():
		h.Kind = KindWeight
		switch GoalDirection(lh.Description) {
		case GoalLose, GoalGain:
			h.GoalDirection = GoalDirection(lh.Description)
		default:
			h.Notes = lh.Description
		}
	case h.Unit == UnitMinutes && strings.HasPrefix(lh.Description, constants.QuitStartPrefix):
		h.Kind = KindQuit
		if start, ok := ParseQuitStart(lh.Description, loc); ok {
			h.QuitStart = &start
		}
	default:
		h.Kind = KindCount
		if len(h.Structure) > 0 {
			h.Kind = KindChecklist
		}
		h.Frequency, h.Notes = ParseFrequencyConfig(lh.Description)
	}

	if h.Unit == "" {
		h.Unit = UnitTimes
	}
	if h.History == nil {
		h.History = History{}
	}
	return h
}

func upgradeForest(nodes []legacyMicroHabit) []MicroHabit {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]MicroHabit, len(nodes))
	for i, n := range nodes {
		out[i] = MicroHabit{ID: n.ID, Title: n.Title, SubHabits: upgradeForest(n.SubHabits)}
	}
	return out
}

// The legacy schedule was either one undated list or a map of day key to list.
func upgradeBlocks(raw json.RawMessage, today string) (map[string][]DailyBlock, error) {
	out := map[string][]DailyBlock{}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}

	convert := func(in []legacyBlock) []DailyBlock {
		blocks := make([]DailyBlock, len(in))
		for i, b := range in {
			blocks[i] = DailyBlock{Time: b.Time, Activity: b.Activity, IsFixed: b.IsFixed, HabitID: b.HabitID, MediaID: b.MediaID}
		}
		return blocks
	}

	var list []legacyBlock
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			out[today] = convert(list)
		}
		return out, nil
	}

	var byDay map[string][]legacyBlock
	if err := json.Unmarshal(raw, &byDay); err != nil {
		return nil, fmt.Errorf("decoding legacy daily blocks: %w", err)
	}
	for day, blocks := range byDay {
		out[day] = convert(blocks)
	}
	return out, nil
}

// EncodeLegacyState writes st in the camelCase shape older clients read.
// Water intake is a single counter there, so only today's value is kept;
// fields the old shape has no slot for are dropped.
func EncodeLegacyState(st AppState, today string) ([]byte, error) {
	out := legacyState{
		Habits:      make([]legacyHabit, 0, len(st.Habits)),
		Media:       make([]legacyMedia, 0, len(st.Media)),
		WaterIntake: st.WaterIntake[today],
		BrainDump:   st.BrainDump,
		DayEndTime:  st.Settings.DayEndTime,
	}
	for _, h := range st.Habits {
		out.Habits = append(out.Habits, downgradeHabit(h))
	}
	for _, m := range st.Media {
		out.Media = append(out.Media, legacyMedia{
			ID: m.ID, Type: m.Type, Title: m.Title, SeriesTitle: m.SeriesTitle,
			SeasonNumber: m.SeasonNumber, VolumeNumber: m.VolumeNumber, EpisodeNumber: m.EpisodeNumber,
			Image: m.Image, Status: m.Status, Rating: m.Rating, StartDate: m.StartDate,
			CompletedDate: m.CompletedDate, Description: m.Description,
			IsCollection: m.IsCollection, ParentID: m.ParentID,
		})
	}

	blocks := make(map[string][]legacyBlock, len(st.DailyBlocks))
	for day, list := range st.DailyBlocks {
		converted := make([]legacyBlock, len(list))
		for i, b := range list {
			converted[i] = legacyBlock{Time: b.Time, Activity: b.Activity, IsFixed: b.IsFixed, HabitID: b.HabitID, MediaID: b.MediaID}
		}
		blocks[day] = converted
	}
	raw, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("encoding legacy daily blocks: %w", err)
	}
	out.DailyBlocks = raw

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding legacy state: %w", err)
	}
	return data, nil
}

func downgradeHabit(h Habit) legacyHabit {
	lh := legacyHabit{
		ID:             h.ID,
		Name:           h.Name,
		TimeOfDay:      string(h.TimeOfDay),
		Color:          h.Color,
		Goal:           h.Goal,
		Increment:      h.Increment,
		Unit:           string(h.Unit),
		Streak:         h.Streak,
		History:        h.History,
		Structure:      downgradeForest(h.Structure),
		StackTrigger:   h.StackTrigger,
		StackedAfterID: h.StackedAfterID,
		TimerDuration:  h.TimerMinutes,
	}

	switch h.Kind {
	case KindWeight:
		lh.Description = h.Notes
		if h.GoalDirection != "" {
			lh.Description = string(h.GoalDirection)
		}
	case KindQuit:
		// The old shape recognises quit habits by their minutes unit.
		lh.Unit = string(UnitMinutes)
		if h.QuitStart != nil {
			lh.Description = constants.QuitStartPrefix + h.QuitStart.Format(quitStartLayouts[0])
		}
	default:
		lh.Description = h.Notes
		if h.Frequency.Type != "" && h.Frequency.Type != FrequencyEvery {
			lh.Description = EncodeFrequencyConfig(h.Frequency, h.Notes)
		}
	}

	if len(h.DailyStructures) > 0 {
		lh.DailyStructures = make(map[string][]legacyMicroHabit, len(h.DailyStructures))
		for wd, forest := range h.DailyStructures {
			lh.DailyStructures[strconv.Itoa(int(wd.Time()))] = downgradeForest(forest)
		}
	}
	for _, r := range h.Reminders {
		days := make([]int, len(r.Days))
		for i, d := range r.Days {
			days[i] = int(d)
		}
		lh.Reminders = append(lh.Reminders, legacyReminder{Time: r.Time, Days: days})
	}
	return lh
}

func downgradeForest(nodes []MicroHabit) []legacyMicroHabit {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]legacyMicroHabit, len(nodes))
	for i, n := range nodes {
		out[i] = legacyMicroHabit{ID: n.ID, Title: n.Title, SubHabits: downgradeForest(n.SubHabits)}
	}
	return out
}
