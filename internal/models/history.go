package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/julianstephens/habitual/internal/constants"
)

// Entry is one day of a habit's history. Numeric habits use Value, where
// constants.SkipValue marks a skipped day; checklist habits use CompletedIDs.
type Entry struct {
	Value        float64
	CompletedIDs []string
	Checklist    bool
}

// NumericEntry returns a numeric entry holding v.
func NumericEntry(v float64) Entry {
	return Entry{Value: v}
}

// SkippedEntry returns the skip marker entry.
func SkippedEntry() Entry {
	return Entry{Value: constants.SkipValue}
}

// ChecklistEntry returns a checklist entry with the given completed node ids.
func ChecklistEntry(ids ...string) Entry {
	return Entry{CompletedIDs: ids, Checklist: true}
}

// IsSkipped reports whether the day was explicitly skipped.
func (e Entry) IsSkipped() bool {
	return !e.Checklist && e.Value == constants.SkipValue
}

// Has reports whether the checklist node id was completed.
func (e Entry) Has(id string) bool {
	for _, c := range e.CompletedIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Toggle flips id in the completed set and returns the updated entry.
func (e Entry) Toggle(id string) Entry {
	ids := make([]string, 0, len(e.CompletedIDs)+1)
	found := false
	for _, c := range e.CompletedIDs {
		if c == id {
			found = true
			continue
		}
		ids = append(ids, c)
	}
	if !found {
		ids = append(ids, id)
	}
	return Entry{CompletedIDs: ids, Checklist: true}
}

type checklistWire struct {
	CompletedIDs []string `json:"completedIds"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Checklist {
		ids := e.CompletedIDs
		if ids == nil {
			ids = []string{}
		}
		return json.Marshal(checklistWire{CompletedIDs: ids})
	}
	return json.Marshal(e.Value)
}

// UnmarshalJSON accepts either a bare number or a {"completedIds": [...]} object.
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = Entry{}
		return nil
	}

	if data[0] == '{' {
		var w checklistWire
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("decoding checklist entry: %w", err)
		}
		*e = Entry{CompletedIDs: w.CompletedIDs, Checklist: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding numeric entry: %w", err)
	}
	*e = Entry{Value: v}
	return nil
}

// History maps day keys (YYYY-MM-DD, local calendar) to entries.
type History map[string]Entry

// Get returns the entry for day and whether one exists.
func (h History) Get(day string) (Entry, bool) {
	if h == nil {
		return Entry{}, false
	}
	e, ok := h[day]
	return e, ok
}

// Keys returns the day keys in chronological order.
func (h History) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
