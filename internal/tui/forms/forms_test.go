package forms

import (
	"testing"

	"github.com/julianstephens/habitual/internal/models"
)

func TestParseItems(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		wantRoots int
		wantErr   bool
	}{
		{name: "flat", paths: []string{"A", "B"}, wantRoots: 2},
		{name: "shared parent", paths: []string{"Wash/Cleanser", "wash/Toner", "Moisturize"}, wantRoots: 2},
		{name: "blank lines ignored", paths: []string{"", "  ", "A"}, wantRoots: 1},
		{name: "empty step", paths: []string{"Wash//Toner"}, wantErr: true},
		{name: "nothing", paths: nil, wantRoots: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItems(tt.paths)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseItems() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.wantRoots {
				t.Errorf("ParseItems() roots = %d, want %d", len(got), tt.wantRoots)
			}
		})
	}
}

func TestFormatItemsRoundTrip(t *testing.T) {
	in := "Wash/Cleanser\nWash/Toner\nMoisturize"
	forest, err := ParseItems([]string{"Wash/Cleanser", "Wash/Toner", "Moisturize"})
	if err != nil {
		t.Fatalf("ParseItems() error = %v", err)
	}
	if got := FormatItems(forest); got != in {
		t.Errorf("FormatItems() = %q, want %q", got, in)
	}
}

func TestFindItem(t *testing.T) {
	forest := []models.MicroHabit{
		{ID: "a", Title: "Wash", SubHabits: []models.MicroHabit{{ID: "b", Title: "Cleanser"}}},
		{ID: "c", Title: "Moisturize"},
	}
	for _, ref := range []string{"b", "cleanser", "Moisturize"} {
		if _, ok := FindItem(forest, ref); !ok {
			t.Errorf("FindItem(%q) not found", ref)
		}
	}
	if _, ok := FindItem(forest, "Sunscreen"); ok {
		t.Error("FindItem() found a missing item")
	}
}

func TestHabitFormApply(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(fm *HabitFormModel)
		wantErr bool
		check   func(t *testing.T, h models.Habit)
	}{
		{
			name: "count",
			edit: func(fm *HabitFormModel) { fm.Name = " Read "; fm.Goal = "30"; fm.Unit = models.UnitMinutes },
			check: func(t *testing.T, h models.Habit) {
				if h.Name != "Read" || h.Goal != 30 || h.Unit != models.UnitMinutes {
					t.Errorf("habit = %+v", h)
				}
			},
		},
		{
			name: "checklist",
			edit: func(fm *HabitFormModel) { fm.Name = "Routine"; fm.Kind = models.KindChecklist; fm.Items = "A/B\nC" },
			check: func(t *testing.T, h models.Habit) {
				if len(h.Structure) != 2 || len(h.Structure[0].SubHabits) != 1 {
					t.Errorf("Structure = %+v", h.Structure)
				}
			},
		},
		{
			name: "specific days",
			edit: func(fm *HabitFormModel) {
				fm.Name = "Gym"
				fm.Frequency = models.FrequencySpecific
				fm.Days = []models.Weekday{models.Monday, models.Thursday}
			},
			check: func(t *testing.T, h models.Habit) {
				if h.Frequency.Type != models.FrequencySpecific || len(h.Frequency.Days) != 2 {
					t.Errorf("Frequency = %+v", h.Frequency)
				}
			},
		},
		{
			name: "per week",
			edit: func(fm *HabitFormModel) { fm.Name = "Run"; fm.Frequency = models.FrequencyDaysPer; fm.PerWeek = "3" },
			check: func(t *testing.T, h models.Habit) {
				if h.Frequency.DaysPerWeek != 3 {
					t.Errorf("Frequency = %+v", h.Frequency)
				}
			},
		},
		{
			name: "weight falls back to kg",
			edit: func(fm *HabitFormModel) { fm.Name = "Weight"; fm.Kind = models.KindWeight; fm.Goal = "70" },
			check: func(t *testing.T, h models.Habit) {
				if h.Unit != models.UnitKg {
					t.Errorf("Unit = %s, want kg", h.Unit)
				}
			},
		},
		{
			name: "reminder",
			edit: func(fm *HabitFormModel) { fm.Name = "Walk"; fm.Reminder = "07:30" },
			check: func(t *testing.T, h models.Habit) {
				if len(h.Reminders) != 1 || len(h.Reminders[0].Days) != 7 {
					t.Errorf("Reminders = %+v", h.Reminders)
				}
			},
		},
		{name: "bad goal", edit: func(fm *HabitFormModel) { fm.Name = "X"; fm.Goal = "lots" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := NewHabitFormModel()
			tt.edit(fm)
			var h models.Habit
			err := fm.Apply(&h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				tt.check(t, h)
			}
		})
	}
}

func TestFromHabit(t *testing.T) {
	h := models.Habit{
		Name: "Read", Kind: models.KindCount, Goal: 30, Increment: 5, Unit: models.UnitMinutes,
		Frequency: models.FrequencyConfig{Type: models.FrequencyDaysPer, DaysPerWeek: 4},
		Reminders: []models.Reminder{{Time: "21:00"}},
	}
	fm := FromHabit(h)
	if fm.Goal != "30" || fm.Increment != "5" || fm.PerWeek != "4" || fm.Reminder != "21:00" {
		t.Errorf("FromHabit() = %+v", fm)
	}
	if NewHabitForm(fm) == nil {
		t.Error("NewHabitForm() returned nil")
	}
}
