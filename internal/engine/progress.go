package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Progress is checklist completion for one day.
type Progress struct {
	Current    int
	Total      int
	Percentage float64
}

// StructureProgress counts how many nodes of structure were completed on day.
// A missing entry and a numeric leftover both count as nothing completed.
func StructureProgress(h models.Habit, day string, structure []models.MicroHabit) Progress {
	ids := FlattenIDs(structure)
	p := Progress{Total: len(ids)}
	if p.Total == 0 {
		return p
	}

	entry, ok := h.History.Get(day)
	if ok && entry.Checklist {
		done := make(map[string]struct{}, len(entry.CompletedIDs))
		for _, id := range entry.CompletedIDs {
			done[id] = struct{}{}
		}
		for _, id := range ids {
			if _, hit := done[id]; hit {
				p.Current++
			}
		}
	}

	p.Percentage = float64(p.Current) / float64(p.Total) * 100
	return p
}

// DayValue returns the numeric value shown for day. Skipped days show 0 and
// report skipped=true so the classifier can keep them apart.
func DayValue(h models.Habit, day string) (value float64, skipped bool) {
	entry, ok := h.History.Get(day)
	if !ok || entry.Checklist {
		return 0, false
	}
	if entry.IsSkipped() {
		return 0, true
	}
	return entry.Value, false
}

// DailyGoal is the stored goal, or the node count when a checklist applies.
func DailyGoal(h models.Habit, date time.Time) float64 {
	if structure := ResolveStructure(h, date); len(structure) > 0 {
		return float64(CountNodes(structure))
	}
	return h.Goal
}

// Reading is what a card displays for one day.
type Reading struct {
	Value      float64
	Goal       float64
	Percentage float64
	Skipped    bool
	Checklist  *Progress
}

// Read summarises h on date for display.
func Read(h models.Habit, date time.Time) Reading {
	day := utils.DayKey(date)
	entry, _ := h.History.Get(day)
	r := Reading{Skipped: entry.IsSkipped()}

	if structure := ResolveStructure(h, date); len(structure) > 0 {
		p := StructureProgress(h, day, structure)
		r.Checklist = &p
		r.Value = float64(p.Current)
		r.Goal = float64(p.Total)
		r.Percentage = p.Percentage
		return r
	}

	r.Value, _ = DayValue(h, day)
	r.Goal = h.Goal
	if r.Goal > 0 {
		r.Percentage = r.Value / r.Goal * 100
	}
	return r
}

// IsDayGoalMet reports whether h met its daily goal on date: a complete
// checklist, a numeric value at or above the goal, or any measurement for a
// weight habit. Quit habits have no daily goal.
func IsDayGoalMet(h models.Habit, date time.Time) bool {
	day := utils.DayKey(date)

	switch h.Kind {
	case models.KindQuit:
		return false
	case models.KindWeight:
		v, skipped := DayValue(h, day)
		return !skipped && v > 0
	}

	if structure := ResolveStructure(h, date); len(structure) > 0 {
		return StructureProgress(h, day, structure).Percentage >= 100
	}

	v, skipped := DayValue(h, day)
	if skipped {
		return false
	}
	if h.Goal <= 0 {
		return v > 0
	}
	return v >= h.Goal
}
