package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Conflict represents a detected problem in the application state
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Habit, block or media names involved
	HabitIDs    []string // IDs of habits involved (for auto-fixing)
}

// Key identifies a conflict independently of slice order.
func (c Conflict) Key() string {
	return string(c.Type) + "|" + c.Description
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Introduced returns conflicts in vr that are absent from before.
func (vr *ValidationResult) Introduced(before ValidationResult) []Conflict {
	seen := make(map[string]bool, len(before.Conflicts))
	for _, c := range before.Conflicts {
		seen[c.Key()] = true
	}
	var out []Conflict
	for _, c := range vr.Conflicts {
		if !seen[c.Key()] {
			out = append(out, c)
		}
	}
	return out
}

// Validator validates application state for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateState checks habits, schedule blocks and settings.
func (v *Validator) ValidateState(st models.AppState) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.ValidateHabits(st.Habits).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.validateBlocks(st).Conflicts...)

	if st.Settings.DayEndTime != "" && !utils.ValidateTimeFormat(st.Settings.DayEndTime) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidTime,
			Description: fmt.Sprintf("Day end time %q is not in HH:MM format", st.Settings.DayEndTime),
		})
	}
	return result
}

// ValidateHabits checks habits against each other and their own fields.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string]models.Habit, len(habits))
	nameIDs := make(map[string][]string)
	var names []string
	for _, h := range habits {
		byID[h.ID] = h
		key := strings.ToLower(strings.TrimSpace(h.Name))
		if key == "" {
			continue
		}
		if _, ok := nameIDs[key]; !ok {
			names = append(names, key)
		}
		nameIDs[key] = append(nameIDs[key], h.ID)
	}

	for _, name := range names {
		if ids := nameIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range habits {
		result.Conflicts = append(result.Conflicts, habitConflicts(h, byID)...)
	}
	return result
}

func habitConflicts(h models.Habit, byID map[string]models.Habit) []Conflict {
	var out []Conflict
	add := func(t constants.ConflictType, format string, args ...interface{}) {
		out = append(out, Conflict{
			Type:        t,
			Description: fmt.Sprintf("Habit \"%s\": ", h.Name) + fmt.Sprintf(format, args...),
			Items:       []string{h.Name},
			HabitIDs:    []string{h.ID},
		})
	}

	if h.Kind == models.KindCount && h.Goal <= 0 {
		add(constants.ConflictInvalidGoal, "goal must be positive, got %g", h.Goal)
	}
	if h.Goal < 0 {
		add(constants.ConflictInvalidGoal, "goal cannot be negative, got %g", h.Goal)
	}
	if h.Kind == models.KindCount || h.Kind == models.KindChecklist {
		if err := h.Frequency.Validate(); err != nil {
			add(constants.ConflictInvalidFrequency, "%v", err)
		}
	}

	for i, r := range h.Reminders {
		if !utils.ValidateTimeFormat(r.Time) {
			add(constants.ConflictInvalidReminder, "reminder %d has invalid time %q", i+1, r.Time)
		}
		for _, d := range r.Days {
			if !d.Valid() {
				add(constants.ConflictInvalidReminder, "reminder %d has invalid weekday %d", i+1, int(d))
			}
		}
	}

	if h.StackedAfterID != "" {
		if h.StackedAfterID == h.ID {
			add(constants.ConflictDanglingStack, "stacked after itself")
		} else if _, ok := byID[h.StackedAfterID]; !ok {
			add(constants.ConflictDanglingStack, "stacked after unknown habit %s", h.StackedAfterID)
		} else if stackCycle(h, byID) {
			add(constants.ConflictDanglingStack, "stacking chain forms a cycle")
		}
	}

	forests := [][]models.MicroHabit{h.Structure}
	days := make([]models.Weekday, 0, len(h.DailyStructures))
	for wd := range h.DailyStructures {
		days = append(days, wd)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	for _, wd := range days {
		forests = append(forests, h.DailyStructures[wd])
	}
	for _, forest := range forests {
		if id, ok := duplicateNodeID(forest); ok {
			add(constants.ConflictDuplicateNodeID, "checklist item id %q is used more than once", id)
		}
	}

	return out
}

// stackCycle follows StackedAfterID links looking for a loop back to h.
func stackCycle(h models.Habit, byID map[string]models.Habit) bool {
	seen := map[string]bool{h.ID: true}
	next := h.StackedAfterID
	for next != "" {
		if seen[next] {
			return true
		}
		seen[next] = true
		parent, ok := byID[next]
		if !ok {
			return false
		}
		next = parent.StackedAfterID
	}
	return false
}

func duplicateNodeID(forest []models.MicroHabit) (string, bool) {
	seen := map[string]bool{}
	var walk func([]models.MicroHabit) (string, bool)
	walk = func(nodes []models.MicroHabit) (string, bool) {
		for _, n := range nodes {
			if seen[n.ID] {
				return n.ID, true
			}
			seen[n.ID] = true
			if id, dup := walk(n.SubHabits); dup {
				return id, true
			}
		}
		return "", false
	}
	return walk(forest)
}

func (v *Validator) validateBlocks(st models.AppState) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	habits := make(map[string]bool, len(st.Habits))
	for _, h := range st.Habits {
		habits[h.ID] = true
	}
	media := make(map[string]bool, len(st.Media))
	for _, m := range st.Media {
		media[m.ID] = true
	}

	days := make([]string, 0, len(st.DailyBlocks))
	for day := range st.DailyBlocks {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		for _, b := range st.DailyBlocks[day] {
			if !utils.ValidateTimeFormat(b.Time) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictInvalidTime,
					Description: fmt.Sprintf("Block \"%s\" on %s has invalid time: %s", b.Activity, day, b.Time),
					Date:        day,
					Items:       []string{b.Activity},
				})
			}
			if b.HabitID != "" && !habits[b.HabitID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictMissingHabitID,
					Description: fmt.Sprintf("Block \"%s\" on %s links to unknown habit %s", b.Activity, day, b.HabitID),
					Date:        day,
					Items:       []string{b.Activity},
					HabitIDs:    []string{b.HabitID},
				})
			}
			if b.MediaID != "" && !media[b.MediaID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictMissingMediaID,
					Description: fmt.Sprintf("Block \"%s\" on %s links to unknown media %s", b.Activity, day, b.MediaID),
					Date:        day,
					Items:       []string{b.Activity},
				})
			}
		}
	}
	return result
}

// AutoFixReferences clears links to habits or media that no longer exist.
func AutoFixReferences(conflicts []Conflict, st *models.AppState) []FixAction {
	actions := []FixAction{}

	habits := make(map[string]bool, len(st.Habits))
	for _, h := range st.Habits {
		habits[h.ID] = true
	}
	media := make(map[string]bool, len(st.Media))
	for _, m := range st.Media {
		media[m.ID] = true
	}

	for _, conflict := range conflicts {
		switch conflict.Type {
		case constants.ConflictDanglingStack:
			for i := range st.Habits {
				h := &st.Habits[i]
				if len(conflict.HabitIDs) == 0 || h.ID != conflict.HabitIDs[0] || h.StackedAfterID == "" {
					continue
				}
				h.StackedAfterID = ""
				h.StackTrigger = ""
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Removed stacking link from \"%s\"", h.Name),
					SourceConflict: conflict,
				})
			}
		case constants.ConflictMissingHabitID, constants.ConflictMissingMediaID:
			blocks := st.DailyBlocks[conflict.Date]
			for i := range blocks {
				b := &blocks[i]
				if b.HabitID != "" && !habits[b.HabitID] {
					b.HabitID = ""
				} else if b.MediaID != "" && !media[b.MediaID] {
					b.MediaID = ""
				} else {
					continue
				}
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Unlinked block \"%s\" on %s", b.Activity, conflict.Date),
					SourceConflict: conflict,
				})
			}
		}
	}
	return actions
}
