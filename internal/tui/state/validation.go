package state

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/validation"
)

// UpdateValidationStatus runs validation and updates the warning message
func (m *Model) UpdateValidationStatus() {
	result := validation.New().ValidateState(m.App.State())
	m.ValidationConflicts = result.Conflicts

	if len(result.Conflicts) > 0 {
		m.ValidationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}
