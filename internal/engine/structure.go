package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// ResolveStructure returns the checklist that applies to h on date. A habit
// without a default structure has no checklist on any day; otherwise a
// weekday override replaces the default entirely.
func ResolveStructure(h models.Habit, date time.Time) []models.MicroHabit {
	if len(h.Structure) == 0 {
		return nil
	}
	if override, ok := h.DailyStructures[models.WeekdayOf(date)]; ok {
		return override
	}
	return h.Structure
}

// CountNodes counts every node of the forest, branches included.
func CountNodes(forest []models.MicroHabit) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.SubHabits)
	}
	return n
}

// FlattenIDs returns every node id of the forest in depth-first order.
func FlattenIDs(forest []models.MicroHabit) []string {
	var ids []string
	var walk func([]models.MicroHabit)
	walk = func(nodes []models.MicroHabit) {
		for _, node := range nodes {
			ids = append(ids, node.ID)
			walk(node.SubHabits)
		}
	}
	walk(forest)
	return ids
}
