package state

import (
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

// RepairReferences clears stacking and schedule links that point nowhere.
// The actions taken are appended to Report when it is non-nil.
type RepairReferences struct {
	Report *[]validation.FixAction
}

func (c RepairReferences) Apply(st *models.AppState, _ Env) error {
	result := validation.New().ValidateState(*st)
	actions := validation.AutoFixReferences(result.Conflicts, st)
	if c.Report != nil {
		*c.Report = append(*c.Report, actions...)
	}
	return nil
}
