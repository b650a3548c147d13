package state

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Seed builds the default dataset used on first start or when the stored
// document cannot be read. History is placed relative to now.
func Seed(now time.Time) models.AppState {
	today := utils.StartOfDay(now)
	day := func(offset int) string {
		return utils.DayKey(utils.AddDays(today, offset))
	}
	series := func(values map[int]float64) models.History {
		h := models.History{}
		for offset, v := range values {
			h[day(offset)] = models.NumericEntry(v)
		}
		return h
	}
	created := utils.AddDays(today, -30)

	st := models.AppState{
		Habits: []models.Habit{
			{
				ID: "h1", Name: "Skincare", TimeOfDay: models.Morning, Color: "orange",
				Kind: models.KindCount, Goal: 1, Unit: models.UnitTimes,
				Frequency: models.DefaultFrequency(),
				History:   series(map[int]float64{-4: 1, -3: 1, -2: 1, 0: 1}),
				CreatedAt: created,
			},
			{
				ID: "h2", Name: "Esercizi", TimeOfDay: models.Anytime, Color: "blue",
				Kind: models.KindCount, Goal: 1, Unit: models.UnitTimes,
				Frequency: models.DefaultFrequency(),
				History:   series(map[int]float64{-2: 1, -1: 1, 0: 1}),
				CreatedAt: created,
			},
			{
				ID: "h3", Name: "Lettura", TimeOfDay: models.Evening, Color: "purple",
				Kind: models.KindCount, Goal: 30, Increment: 5, Unit: models.UnitMinutes,
				Frequency: models.DefaultFrequency(),
				History:   series(map[int]float64{0: 15}),
				CreatedAt: created,
			},
			{
				ID: "h5", Name: "Peso Corporeo", TimeOfDay: models.Morning, Color: "indigo",
				Kind: models.KindWeight, Goal: 75, Unit: models.UnitKg, GoalDirection: models.GoalLose,
				Frequency: models.DefaultFrequency(),
				History: series(map[int]float64{
					-6: 83.2, -5: 82.8, -4: 82.5, -3: 82.1, -2: 81.8, -1: 81.5, 0: 81.0,
				}),
				CreatedAt: created,
			},
		},
		Media: []models.MediaItem{
			{ID: "b1", Type: models.MediaBook, Title: "Project Hail Mary", SeriesTitle: "Andy Weir", Status: models.MediaOngoing, StartDate: "2024-05-10", Description: "An astronaut wakes up alone on a spaceship with no memory."},
			{ID: "bc1", Type: models.MediaBook, Title: "Dune Saga", Status: models.MediaOngoing, IsCollection: true, Description: "Frank Herbert's science fiction saga."},
			{ID: "b2", Type: models.MediaBook, Title: "Dune", ParentID: "bc1", VolumeNumber: 1, Status: models.MediaCompleted, CompletedDate: "2024-04-15", Description: "The first chapter on Arrakis."},
			{ID: "m1", Type: models.MediaMovie, Title: "Oppenheimer", Status: models.MediaCompleted, CompletedDate: "2024-05-20"},
			{ID: "sc1", Type: models.MediaMovie, Title: "Succession", Status: models.MediaOngoing, IsCollection: true},
			{ID: "s1e1", Type: models.MediaMovie, Title: "Season 1", ParentID: "sc1", Status: models.MediaCompleted, CompletedDate: "2024-05-01"},
			{ID: "g1", Type: models.MediaGame, Title: "Elden Ring", SeriesTitle: "FromSoftware", Status: models.MediaOngoing, StartDate: "2024-02-25"},
			{ID: "g2", Type: models.MediaGame, Title: "Hades", SeriesTitle: "Supergiant", Status: models.MediaPaused},
			{ID: "d1", Type: models.MediaDrawing, Title: "Anatomy Study", Status: models.MediaCompleted, CompletedDate: "2024-05-22"},
			{ID: "d2", Type: models.MediaDrawing, Title: "Cyberpunk Landscape", Status: models.MediaOngoing, StartDate: "2024-05-23"},
		},
		DailyBlocks: map[string][]models.DailyBlock{
			day(0): {
				{Time: "08:30", Activity: "Morning Skincare & Coffee", IsFixed: true, HabitID: "h1"},
				{Time: "09:00", Activity: "Deep Work"},
				{Time: "11:00", Activity: "Team Meeting", IsFixed: true},
				{Time: "13:00", Activity: "Lunch and reading Dune", MediaID: "b2"},
			},
		},
		WaterIntake: map[string]int{day(0): 3},
		BrainDump:   "Book the restaurant for Saturday. Groceries: milk, bread, eggs.",
		Settings: models.Settings{
			DayEndTime:           constants.DefaultDayEndTime,
			Timezone:             constants.DefaultTimezone,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
		},
	}
	models.Normalize(&st)
	return st
}
