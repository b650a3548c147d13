package state

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

func findHabit(st *models.AppState, id string) (*models.Habit, error) {
	for i := range st.Habits {
		if st.Habits[i].ID == id {
			return &st.Habits[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
}

func checkDay(day string) error {
	if _, err := utils.ParseDateInLocation(day, time.UTC); err != nil {
		return fmt.Errorf("%w: day %q is not YYYY-MM-DD", ErrInvalidArgument, day)
	}
	return nil
}

// assignNodeIDs gives every checklist item without an ID a fresh one.
func assignNodeIDs(forest []models.MicroHabit, newID func() string) {
	for i := range forest {
		if forest[i].ID == "" {
			forest[i].ID = newID()
		}
		assignNodeIDs(forest[i].SubHabits, newID)
	}
}

func applyHabitDefaults(h *models.Habit) {
	h.Name = strings.TrimSpace(h.Name)
	if h.Kind == "" {
		h.Kind = models.KindCount
		if h.HasStructure() {
			h.Kind = models.KindChecklist
		}
	}
	if h.Color == "" {
		h.Color = constants.DefaultColor
	}
	if h.TimeOfDay == "" {
		h.TimeOfDay = models.Anytime
	}
	if h.Unit == "" {
		h.Unit = models.UnitTimes
	}
	if h.Frequency.Type == "" {
		h.Frequency = models.DefaultFrequency()
	}
	if h.Kind == models.KindCount && h.Goal == 0 {
		h.Goal = constants.DefaultGoal
	}
	if h.Kind == models.KindQuit {
		h.Unit = models.UnitMinutes
	}
	if h.History == nil {
		h.History = models.History{}
	}
}

// AddHabit creates a habit. ID and CreatedAt are filled in when empty.
type AddHabit struct {
	Habit models.Habit
}

func (c AddHabit) Apply(st *models.AppState, env Env) error {
	h := c.Habit.Clone()
	if h.ID == "" {
		h.ID = env.NewID()
	}
	if _, err := findHabit(st, h.ID); err == nil {
		return fmt.Errorf("%w: habit id %s already exists", ErrInvalidArgument, h.ID)
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = env.Now
	}
	if h.Kind == models.KindQuit && h.QuitStart == nil {
		start := env.Now
		h.QuitStart = &start
	}
	applyHabitDefaults(&h)
	assignNodeIDs(h.Structure, env.NewID)
	for wd := range h.DailyStructures {
		assignNodeIDs(h.DailyStructures[wd], env.NewID)
	}
	if err := h.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	st.Habits = append(st.Habits, h)
	return nil
}

// UpdateHabit replaces a habit's definition. History, CreatedAt and the
// derived streak are kept from the stored habit.
type UpdateHabit struct {
	Habit models.Habit
}

func (c UpdateHabit) Apply(st *models.AppState, env Env) error {
	cur, err := findHabit(st, c.Habit.ID)
	if err != nil {
		return err
	}
	h := c.Habit.Clone()
	h.History = cur.History
	h.CreatedAt = cur.CreatedAt
	h.Streak = cur.Streak
	if h.Kind == models.KindQuit && h.QuitStart == nil {
		h.QuitStart = cur.QuitStart
	}
	applyHabitDefaults(&h)
	assignNodeIDs(h.Structure, env.NewID)
	for wd := range h.DailyStructures {
		assignNodeIDs(h.DailyStructures[wd], env.NewID)
	}
	if err := h.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	*cur = h
	return nil
}

// DeleteHabit removes a habit and every reference to it.
type DeleteHabit struct {
	ID string
}

func (c DeleteHabit) Apply(st *models.AppState, _ Env) error {
	if _, err := findHabit(st, c.ID); err != nil {
		return err
	}
	kept := st.Habits[:0]
	for _, h := range st.Habits {
		if h.ID == c.ID {
			continue
		}
		if h.StackedAfterID == c.ID {
			h.StackedAfterID = ""
			h.StackTrigger = ""
		}
		kept = append(kept, h)
	}
	st.Habits = kept
	for day, blocks := range st.DailyBlocks {
		for i := range blocks {
			if blocks[i].HabitID == c.ID {
				blocks[i].HabitID = ""
			}
		}
		st.DailyBlocks[day] = blocks
	}
	return nil
}

// LogDelta adds Delta to a numeric habit's value for Day. A skipped day
// restarts from zero and the result never drops below zero.
type LogDelta struct {
	HabitID string
	Day     string
	Delta   float64
}

func (c LogDelta) Apply(st *models.AppState, _ Env) error {
	h, err := findHabit(st, c.HabitID)
	if err != nil {
		return err
	}
	if h.IsChecklist() || h.IsQuit() {
		return fmt.Errorf("%w: %s habits are not logged by amount", ErrWrongHabitKind, h.Kind)
	}
	if err := checkDay(c.Day); err != nil {
		return err
	}

	base, _ := engine.DayValue(*h, c.Day)
	next := math.Max(0, base+c.Delta)
	if next == 0 {
		delete(h.History, c.Day)
		return nil
	}
	h.History[c.Day] = models.NumericEntry(next)
	return nil
}

// ToggleSkip marks Day as skipped, or clears an existing skip.
type ToggleSkip struct {
	HabitID string
	Day     string
}

func (c ToggleSkip) Apply(st *models.AppState, _ Env) error {
	h, err := findHabit(st, c.HabitID)
	if err != nil {
		return err
	}
	if err := checkDay(c.Day); err != nil {
		return err
	}
	if e, ok := h.History.Get(c.Day); ok && e.IsSkipped() {
		delete(h.History, c.Day)
		return nil
	}
	h.History[c.Day] = models.SkippedEntry()
	return nil
}

// ToggleMicroHabit checks or unchecks one checklist item on Day.
type ToggleMicroHabit struct {
	HabitID string
	Day     string
	NodeID  string
}

func (c ToggleMicroHabit) Apply(st *models.AppState, _ Env) error {
	h, err := findHabit(st, c.HabitID)
	if err != nil {
		return err
	}
	date, err := utils.ParseDateInLocation(c.Day, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: day %q is not YYYY-MM-DD", ErrInvalidArgument, c.Day)
	}
	structure := engine.ResolveStructure(*h, date)
	if len(structure) == 0 {
		return fmt.Errorf("%w: %s has no checklist", ErrWrongHabitKind, h.Name)
	}
	found := false
	for _, id := range engine.FlattenIDs(structure) {
		if id == c.NodeID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: checklist item %s is not part of %s on %s", ErrInvalidArgument, c.NodeID, h.Name, c.Day)
	}

	entry, ok := h.History.Get(c.Day)
	if !ok || !entry.Checklist {
		entry = models.ChecklistEntry()
	}
	entry = entry.Toggle(c.NodeID)
	if len(entry.CompletedIDs) == 0 {
		delete(h.History, c.Day)
		return nil
	}
	h.History[c.Day] = entry
	return nil
}

// LogWeight records a measurement for Day.
type LogWeight struct {
	HabitID string
	Day     string
	Value   float64
}

func (c LogWeight) Apply(st *models.AppState, _ Env) error {
	h, err := findHabit(st, c.HabitID)
	if err != nil {
		return err
	}
	if !h.IsWeight() {
		return fmt.Errorf("%w: %s is not a weight habit", ErrWrongHabitKind, h.Name)
	}
	if err := checkDay(c.Day); err != nil {
		return err
	}
	if c.Value <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidArgument)
	}
	h.History[c.Day] = models.NumericEntry(c.Value)
	return nil
}

// LogRelapse increments the reset count of a quit habit on Day.
type LogRelapse struct {
	HabitID string
	Day     string
}

func (c LogRelapse) Apply(st *models.AppState, _ Env) error {
	h, err := findHabit(st, c.HabitID)
	if err != nil {
		return err
	}
	if !h.IsQuit() {
		return fmt.Errorf("%w: %s is not a quit habit", ErrWrongHabitKind, h.Name)
	}
	if err := checkDay(c.Day); err != nil {
		return err
	}
	count, _ := engine.DayValue(*h, c.Day)
	h.History[c.Day] = models.NumericEntry(count + 1)
	return nil
}

// TimerDelta is the amount a finished timer session adds: whole minutes
// rounded up for minute habits, one unit otherwise.
func TimerDelta(h models.Habit, seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	if h.Unit == models.UnitMinutes {
		return math.Ceil(float64(seconds) / 60)
	}
	return 1
}
