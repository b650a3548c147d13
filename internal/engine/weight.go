package engine

import (
	"github.com/julianstephens/habitual/internal/models"
)

// Measurement is one logged weight.
type Measurement struct {
	Day   string
	Value float64
}

// WeightSeries returns logged measurements in chronological order.
func WeightSeries(h models.Habit) []Measurement {
	var out []Measurement
	for _, key := range h.History.Keys() {
		if v, skipped := DayValue(h, key); !skipped && v > 0 {
			out = append(out, Measurement{Day: key, Value: v})
		}
	}
	return out
}

// Trend summarises a weight habit against its target.
type Trend struct {
	First    float64
	Latest   float64
	Change   float64 // latest minus first
	ToTarget float64 // target minus latest; zero when no target
	OnTrack  bool
	Samples  int
}

// WeightTrend computes the trend of h. OnTrack reports whether the change so
// far moves toward the goal direction.
func WeightTrend(h models.Habit) Trend {
	series := WeightSeries(h)
	if len(series) == 0 {
		return Trend{}
	}
	t := Trend{
		First:   series[0].Value,
		Latest:  series[len(series)-1].Value,
		Samples: len(series),
	}
	t.Change = t.Latest - t.First
	if h.Goal > 0 {
		t.ToTarget = h.Goal - t.Latest
	}

	switch h.GoalDirection {
	case models.GoalGain:
		t.OnTrack = t.Change >= 0
	default:
		t.OnTrack = t.Change <= 0
	}
	return t
}
