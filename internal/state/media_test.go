package state

import (
	"errors"
	"testing"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

func TestMediaCommands(t *testing.T) {
	s, _ := emptyStore(t)

	st := mustDispatch(t, s, AddMedia{Item: models.MediaItem{Type: models.MediaBook, Title: "Dune Saga", IsCollection: true}})
	saga := st.Media[0]
	if saga.Status != models.MediaOngoing || saga.StartDate != "2024-06-12" {
		t.Errorf("expected defaults, got %+v", saga)
	}

	st = mustDispatch(t, s, AddMedia{Item: models.MediaItem{Type: models.MediaBook, Title: "Dune", ParentID: saga.ID}})
	dune := st.Media[1]
	mustDispatch(t, s, AddMedia{Item: models.MediaItem{Type: models.MediaBook, Title: "Dune Messiah", ParentID: saga.ID}})
	mustDispatch(t, s, AddMedia{Item: models.MediaItem{Type: models.MediaGame, Title: "Hades"}})

	if _, err := s.Dispatch(AddMedia{Item: models.MediaItem{Type: models.MediaBook, Title: "Orphan", ParentID: dune.ID}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected non-collection parent to be rejected, got %v", err)
	}
	if _, err := s.Dispatch(AddMedia{Item: models.MediaItem{Type: "podcast", Title: "x"}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected unknown type to be rejected, got %v", err)
	}

	rating := 5
	st = mustDispatch(t, s, UpdateMediaStatus{ID: dune.ID, Status: models.MediaCompleted, Rating: &rating})
	got := st.Media[1]
	if got.Status != models.MediaCompleted || got.CompletedDate != "2024-06-12" || got.Rating != 5 {
		t.Errorf("status update = %+v", got)
	}
	st = mustDispatch(t, s, UpdateMediaStatus{ID: dune.ID, Status: models.MediaPaused})
	if st.Media[1].CompletedDate != "" {
		t.Error("leaving completed should clear the completion date")
	}

	if n := len(MediaByType(st, models.MediaBook)); n != 3 {
		t.Errorf("MediaByType(book) = %d, want 3", n)
	}
	if n := len(MediaChildren(st, saga.ID)); n != 2 {
		t.Errorf("MediaChildren = %d, want 2", n)
	}

	mustDispatch(t, s, AddBlock{Day: "2024-06-12", Block: models.DailyBlock{Time: "13:00", Activity: "Read", MediaID: dune.ID}})
	st = mustDispatch(t, s, DeleteMedia{ID: saga.ID})
	if len(st.Media) != 1 || st.Media[0].Title != "Hades" {
		t.Errorf("expected cascade delete, left %+v", st.Media)
	}
	if st.DailyBlocks["2024-06-12"][0].MediaID != "" {
		t.Error("expected block media link to be cleared")
	}
}

func TestScheduleCommands(t *testing.T) {
	s, _ := emptyStore(t)
	day := "2024-06-12"

	for _, b := range []models.DailyBlock{
		{Time: "13:00", Activity: "Lunch"},
		{Time: "08:30", Activity: "Coffee", IsFixed: true},
		{Time: "09:00", Activity: "Deep work"},
	} {
		mustDispatch(t, s, AddBlock{Day: day, Block: b})
	}
	st := s.State()
	blocks := st.DailyBlocks[day]
	if blocks[0].Time != "08:30" || blocks[2].Time != "13:00" {
		t.Errorf("blocks not ordered by time: %+v", blocks)
	}

	if _, err := s.Dispatch(AddBlock{Day: day, Block: models.DailyBlock{Time: "9am", Activity: "x"}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected bad time to be rejected, got %v", err)
	}
	if _, err := s.Dispatch(AddBlock{Day: day, Block: models.DailyBlock{Time: "10:00", Activity: "x", HabitID: "ghost"}}); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected unknown habit to be rejected, got %v", err)
	}

	st = mustDispatch(t, s, RemoveBlock{Day: day, Index: 1})
	if len(st.DailyBlocks[day]) != 2 || st.DailyBlocks[day][1].Activity != "Lunch" {
		t.Errorf("unexpected blocks after remove: %+v", st.DailyBlocks[day])
	}
	if _, err := s.Dispatch(RemoveBlock{Day: day, Index: 5}); !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestRepairReferences(t *testing.T) {
	p := &memPersister{data: []byte(`{"version":2,"habits":[{"id":"a","name":"A","kind":"count","goal":1,"unit":"times","stacked_after_id":"gone","history":{}}],"daily_blocks":{"2024-06-12":[{"time":"09:00","activity":"x","is_fixed":false,"habit_id":"gone"}]}}`)}
	s := newTestStore(t, p)

	// Pre-existing conflicts do not block unrelated commands.
	mustDispatch(t, s, SetBrainDump{Text: "ok"})

	var report []validation.FixAction
	st := mustDispatch(t, s, RepairReferences{Report: &report})
	if len(report) != 2 {
		t.Errorf("expected 2 repairs, got %+v", report)
	}
	if st.Habits[0].StackedAfterID != "" || st.DailyBlocks["2024-06-12"][0].HabitID != "" {
		t.Error("expected dangling links to be cleared")
	}
}
