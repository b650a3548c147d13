package state

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

func findMedia(st *models.AppState, id string) (*models.MediaItem, error) {
	for i := range st.Media {
		if st.Media[i].ID == id {
			return &st.Media[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMediaNotFound, id)
}

func validMediaType(t models.MediaType) bool {
	switch t {
	case models.MediaBook, models.MediaMovie, models.MediaGame, models.MediaDrawing:
		return true
	}
	return false
}

func validMediaStatus(s models.MediaStatus) bool {
	switch s {
	case models.MediaCompleted, models.MediaOngoing, models.MediaPaused:
		return true
	}
	return false
}

// AddMedia logs a book, movie, game or drawing. A ParentID must name a collection.
type AddMedia struct {
	Item models.MediaItem
}

func (c AddMedia) Apply(st *models.AppState, env Env) error {
	item := c.Item
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return fmt.Errorf("%w: media title cannot be empty", ErrInvalidArgument)
	}
	if !validMediaType(item.Type) {
		return fmt.Errorf("%w: unknown media type %q", ErrInvalidArgument, item.Type)
	}
	if item.Status == "" {
		item.Status = models.MediaOngoing
	}
	if !validMediaStatus(item.Status) {
		return fmt.Errorf("%w: unknown media status %q", ErrInvalidArgument, item.Status)
	}
	if item.Rating < 0 || item.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidArgument)
	}
	if item.ParentID != "" {
		parent, err := findMedia(st, item.ParentID)
		if err != nil {
			return err
		}
		if !parent.IsCollection {
			return fmt.Errorf("%w: %s is not a collection", ErrInvalidArgument, parent.Title)
		}
	}
	if item.ID == "" {
		item.ID = env.NewID()
	}
	if item.StartDate == "" {
		item.StartDate = utils.DayKey(env.Now)
	}
	if item.Status == models.MediaCompleted && item.CompletedDate == "" {
		item.CompletedDate = utils.DayKey(env.Now)
	}
	st.Media = append(st.Media, item)
	return nil
}

// UpdateMediaStatus changes status and, when Rating is set, the rating.
type UpdateMediaStatus struct {
	ID     string
	Status models.MediaStatus
	Rating *int
}

func (c UpdateMediaStatus) Apply(st *models.AppState, env Env) error {
	item, err := findMedia(st, c.ID)
	if err != nil {
		return err
	}
	if !validMediaStatus(c.Status) {
		return fmt.Errorf("%w: unknown media status %q", ErrInvalidArgument, c.Status)
	}
	if c.Rating != nil {
		if *c.Rating < 0 || *c.Rating > 5 {
			return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidArgument)
		}
		item.Rating = *c.Rating
	}
	item.Status = c.Status
	if c.Status == models.MediaCompleted {
		if item.CompletedDate == "" {
			item.CompletedDate = utils.DayKey(env.Now)
		}
	} else {
		item.CompletedDate = ""
	}
	return nil
}

// DeleteMedia removes an item and, for collections, all of its descendants.
type DeleteMedia struct {
	ID string
}

func (c DeleteMedia) Apply(st *models.AppState, _ Env) error {
	if _, err := findMedia(st, c.ID); err != nil {
		return err
	}

	doomed := map[string]bool{c.ID: true}
	for changed := true; changed; {
		changed = false
		for _, m := range st.Media {
			if !doomed[m.ID] && m.ParentID != "" && doomed[m.ParentID] {
				doomed[m.ID] = true
				changed = true
			}
		}
	}

	kept := st.Media[:0]
	for _, m := range st.Media {
		if !doomed[m.ID] {
			kept = append(kept, m)
		}
	}
	st.Media = kept

	for day, blocks := range st.DailyBlocks {
		for i := range blocks {
			if doomed[blocks[i].MediaID] {
				blocks[i].MediaID = ""
			}
		}
		st.DailyBlocks[day] = blocks
	}
	return nil
}
