package state

import "github.com/google/uuid"

// NewID returns a random identifier for habits, checklist items and media.
func NewID() string {
	return uuid.NewString()
}
