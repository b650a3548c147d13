package forms

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/models"
)

// ParseItems builds a checklist forest from "Parent/Child" paths. Paths
// sharing a prefix share the node; blank lines are ignored.
func ParseItems(paths []string) ([]models.MicroHabit, error) {
	var forest []models.MicroHabit
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		titles := strings.Split(p, "/")
		for i := range titles {
			titles[i] = strings.TrimSpace(titles[i])
			if titles[i] == "" {
				return nil, fmt.Errorf("checklist item %q has an empty step", p)
			}
		}
		forest = insertPath(forest, titles)
	}
	return forest, nil
}

func insertPath(forest []models.MicroHabit, titles []string) []models.MicroHabit {
	if len(titles) == 0 {
		return forest
	}
	for i := range forest {
		if strings.EqualFold(forest[i].Title, titles[0]) {
			forest[i].SubHabits = insertPath(forest[i].SubHabits, titles[1:])
			return forest
		}
	}
	node := models.MicroHabit{Title: titles[0], SubHabits: insertPath(nil, titles[1:])}
	return append(forest, node)
}

// FormatItems is the inverse of ParseItems: one path per leaf, one per line.
func FormatItems(forest []models.MicroHabit) string {
	var lines []string
	var walk func(prefix string, nodes []models.MicroHabit)
	walk = func(prefix string, nodes []models.MicroHabit) {
		for _, n := range nodes {
			path := n.Title
			if prefix != "" {
				path = prefix + "/" + n.Title
			}
			if len(n.SubHabits) == 0 {
				lines = append(lines, path)
				continue
			}
			walk(path, n.SubHabits)
		}
	}
	walk("", forest)
	return strings.Join(lines, "\n")
}

// FindItem resolves a checklist node by ID or by title (case-insensitive),
// searching depth first.
func FindItem(forest []models.MicroHabit, ref string) (models.MicroHabit, bool) {
	for _, n := range forest {
		if n.ID == ref || strings.EqualFold(n.Title, ref) {
			return n, true
		}
		if found, ok := FindItem(n.SubHabits, ref); ok {
			return found, true
		}
	}
	return models.MicroHabit{}, false
}
