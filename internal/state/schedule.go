package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// AddBlock inserts a block into Day's schedule, kept ordered by time.
type AddBlock struct {
	Day   string
	Block models.DailyBlock
}

func (c AddBlock) Apply(st *models.AppState, _ Env) error {
	if err := checkDay(c.Day); err != nil {
		return err
	}
	b := c.Block
	b.Activity = strings.TrimSpace(b.Activity)
	if b.Activity == "" {
		return fmt.Errorf("%w: block activity cannot be empty", ErrInvalidArgument)
	}
	if !utils.ValidateTimeFormat(b.Time) {
		return fmt.Errorf("%w: block time must be HH:MM, got %q", ErrInvalidArgument, b.Time)
	}
	if b.HabitID != "" {
		if _, err := findHabit(st, b.HabitID); err != nil {
			return err
		}
	}
	if b.MediaID != "" {
		if _, err := findMedia(st, b.MediaID); err != nil {
			return err
		}
	}

	blocks := append(st.DailyBlocks[c.Day], b)
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Time < blocks[j].Time })
	st.DailyBlocks[c.Day] = blocks
	return nil
}

// RemoveBlock deletes the block at Index (0-based) of Day's schedule.
type RemoveBlock struct {
	Day   string
	Index int
}

func (c RemoveBlock) Apply(st *models.AppState, _ Env) error {
	blocks := st.DailyBlocks[c.Day]
	if c.Index < 0 || c.Index >= len(blocks) {
		return fmt.Errorf("%w: %s has no block %d", ErrBlockNotFound, c.Day, c.Index+1)
	}
	blocks = append(blocks[:c.Index], blocks[c.Index+1:]...)
	if len(blocks) == 0 {
		delete(st.DailyBlocks, c.Day)
		return nil
	}
	st.DailyBlocks[c.Day] = blocks
	return nil
}
