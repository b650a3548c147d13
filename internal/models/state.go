package models

// MediaType is the kind of media being tracked.
type MediaType string

// MediaStatus is the consumption status of a media item.
type MediaStatus string

const (
	MediaBook    MediaType = "book"
	MediaMovie   MediaType = "movie"
	MediaGame    MediaType = "game"
	MediaDrawing MediaType = "drawing"

	MediaCompleted MediaStatus = "completed"
	MediaOngoing   MediaStatus = "ongoing"
	MediaPaused    MediaStatus = "paused"
)

type MediaItem struct {
	ID            string      `json:"id"`
	Type          MediaType   `json:"type"`
	Title         string      `json:"title"`
	SeriesTitle   string      `json:"series_title,omitempty"`
	SeasonNumber  string      `json:"season_number,omitempty"`
	VolumeNumber  int         `json:"volume_number,omitempty"`
	EpisodeNumber int         `json:"episode_number,omitempty"`
	Image         string      `json:"image,omitempty"`
	Status        MediaStatus `json:"status"`
	Rating        int         `json:"rating,omitempty"`
	StartDate     string      `json:"start_date,omitempty"`
	CompletedDate string      `json:"completed_date,omitempty"`
	Description   string      `json:"description,omitempty"`
	IsCollection  bool        `json:"is_collection,omitempty"`
	ParentID      string      `json:"parent_id,omitempty"`
}

// DailyBlock is one entry of a day's schedule, optionally linked to a habit or media item.
type DailyBlock struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	IsFixed  bool   `json:"is_fixed"`
	HabitID  string `json:"habit_id,omitempty"`
	MediaID  string `json:"media_id,omitempty"`
}

// AppState is the whole persisted document.
type AppState struct {
	Version     int                     `json:"version"`
	Habits      []Habit                 `json:"habits"`
	Media       []MediaItem             `json:"media"`
	DailyBlocks map[string][]DailyBlock `json:"daily_blocks"`
	WaterIntake map[string]int          `json:"water_intake"`
	BrainDump   string                  `json:"brain_dump"`
	Settings    Settings                `json:"settings"`
}

// Clone returns a deep copy so reducers can build a new snapshot without
// mutating the previous one.
func (s AppState) Clone() AppState {
	out := s
	out.Habits = make([]Habit, len(s.Habits))
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	out.Media = append([]MediaItem(nil), s.Media...)
	out.DailyBlocks = make(map[string][]DailyBlock, len(s.DailyBlocks))
	for k, v := range s.DailyBlocks {
		out.DailyBlocks[k] = append([]DailyBlock(nil), v...)
	}
	out.WaterIntake = make(map[string]int, len(s.WaterIntake))
	for k, v := range s.WaterIntake {
		out.WaterIntake[k] = v
	}
	return out
}

// Clone returns a deep copy of the habit.
func (h Habit) Clone() Habit {
	out := h
	out.History = make(History, len(h.History))
	for k, e := range h.History {
		e.CompletedIDs = append([]string(nil), e.CompletedIDs...)
		out.History[k] = e
	}
	out.Frequency.Days = append([]Weekday(nil), h.Frequency.Days...)
	out.Structure = cloneForest(h.Structure)
	if h.DailyStructures != nil {
		out.DailyStructures = make(map[Weekday][]MicroHabit, len(h.DailyStructures))
		for wd, f := range h.DailyStructures {
			out.DailyStructures[wd] = cloneForest(f)
		}
	}
	out.Reminders = make([]Reminder, len(h.Reminders))
	for i, r := range h.Reminders {
		out.Reminders[i] = Reminder{Time: r.Time, Days: append([]Weekday(nil), r.Days...)}
	}
	if h.QuitStart != nil {
		start := *h.QuitStart
		out.QuitStart = &start
	}
	return out
}

func cloneForest(nodes []MicroHabit) []MicroHabit {
	if nodes == nil {
		return nil
	}
	out := make([]MicroHabit, len(nodes))
	for i, n := range nodes {
		out[i] = MicroHabit{ID: n.ID, Title: n.Title, SubHabits: cloneForest(n.SubHabits)}
	}
	return out
}
