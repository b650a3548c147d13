// Package optimizer reads recent habit history and suggests goal and
// frequency adjustments.
package optimizer

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// OptimizationType represents the type of adjustment suggested
type OptimizationType string

const (
	OptimizationReduceGoal      OptimizationType = "reduce_goal"
	OptimizationIncreaseGoal    OptimizationType = "increase_goal"
	OptimizationReduceFrequency OptimizationType = "reduce_frequency"
	OptimizationRemoveHabit     OptimizationType = "remove_habit"

	// DefaultLookbackDays is the window analysed when none is given.
	DefaultLookbackDays = 28

	// minSamples is the number of tracked days needed before suggesting anything.
	minSamples = 7
)

// Optimization represents a suggested adjustment for a habit
type Optimization struct {
	HabitID        string           `json:"habit_id"`
	HabitName      string           `json:"habit_name"`
	Type           OptimizationType `json:"type"`
	Reason         string           `json:"reason"`
	CurrentValue   string           `json:"current_value,omitempty"`
	SuggestedValue string           `json:"suggested_value,omitempty"`
}

// tally counts how the tracked days of the window went.
type tally struct {
	tracked   int
	met       int
	partial   int
	skipped   int
	overshoot int
}

func (t tally) percent(n int) float64 {
	if t.tracked == 0 {
		return 0
	}
	return float64(n) / float64(t.tracked) * 100
}

// Analyzer suggests adjustments from the days before today.
type Analyzer struct {
	lookback int
}

// NewAnalyzer creates an analyzer over the last lookbackDays days.
func NewAnalyzer(lookbackDays int) *Analyzer {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Analyzer{lookback: lookbackDays}
}

func (a *Analyzer) collect(h models.Habit, today time.Time) tally {
	var t tally
	created := utils.StartOfDay(h.CreatedAt)
	for i := 1; i <= a.lookback; i++ {
		date := utils.AddDays(today, -i)
		if !h.CreatedAt.IsZero() && date.Before(created) {
			break
		}
		if !engine.IsEligibleDay(h, date) {
			continue
		}
		t.tracked++

		r := engine.Read(h, date)
		switch {
		case r.Skipped:
			t.skipped++
		case r.Percentage >= 100:
			t.met++
			if r.Checklist == nil && r.Percentage >= 150 {
				t.overshoot++
			}
		case r.Percentage > 0:
			t.partial++
		}
	}
	return t
}

// AnalyzeHabit returns suggestions for one count or checklist habit. Quit and
// weight habits have no daily goal to tune.
func (a *Analyzer) AnalyzeHabit(h models.Habit, now time.Time, dayEndTime string) []Optimization {
	if h.IsQuit() || h.IsWeight() {
		return nil
	}

	t := a.collect(h, engine.EffectiveToday(now, dayEndTime))
	if t.tracked < minSamples {
		return nil
	}

	var optimizations []Optimization
	suggest := func(kind OptimizationType, reason, current, suggested string) {
		optimizations = append(optimizations, Optimization{
			HabitID:        h.ID,
			HabitName:      h.Name,
			Type:           kind,
			Reason:         reason,
			CurrentValue:   current,
			SuggestedValue: suggested,
		})
	}

	step := h.Step()
	partialPercent := t.percent(t.partial)
	if partialPercent > 50 && !h.IsChecklist() && h.Goal > step {
		goal := math.Max(step, math.Round(h.Goal*0.75/step)*step)
		suggest(OptimizationReduceGoal,
			fmt.Sprintf("%.0f%% of recent days fell short of the goal", partialPercent),
			utils.FormatNumber(h.Goal), utils.FormatNumber(goal))
	}

	overshootPercent := t.percent(t.overshoot)
	if overshootPercent > 50 && h.Goal > 0 {
		goal := math.Ceil(h.Goal*1.25/step) * step
		suggest(OptimizationIncreaseGoal,
			fmt.Sprintf("%.0f%% of recent days went well past the goal", overshootPercent),
			utils.FormatNumber(h.Goal), utils.FormatNumber(goal))
	}

	skippedPercent := t.percent(t.skipped)
	if t.skipped >= 3 || skippedPercent > 40 {
		reason := fmt.Sprintf("%d of %d recent days were skipped", t.skipped, t.tracked)
		switch h.Frequency.Type {
		case models.FrequencyEvery:
			suggest(OptimizationReduceFrequency, reason, h.Frequency.String(), "5 days/week")
		case models.FrequencySpecific:
			if n := len(h.Frequency.Days); n > 1 {
				suggest(OptimizationReduceFrequency, reason, h.Frequency.String(), fmt.Sprintf("%d days/week", n-1))
			} else {
				suggest(OptimizationRemoveHabit, reason, h.Frequency.String(), "")
			}
		case models.FrequencyDaysPer:
			if h.Frequency.DaysPerWeek > 1 {
				suggest(OptimizationReduceFrequency, reason, h.Frequency.String(), fmt.Sprintf("%d days/week", h.Frequency.DaysPerWeek-1))
			} else {
				suggest(OptimizationRemoveHabit, reason, h.Frequency.String(), "")
			}
		}
	}

	return optimizations
}

// AnalyzeAll analyzes every habit of the state.
func (a *Analyzer) AnalyzeAll(st models.AppState, now time.Time) []Optimization {
	var all []Optimization
	for _, h := range st.Habits {
		all = append(all, a.AnalyzeHabit(h, now, st.Settings.DayEndTime)...)
	}
	return all
}
