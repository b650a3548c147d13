package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Status is the classification of one calendar day.
type Status string

// Tone is the colour role a day is rendered with.
type Tone string

const (
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
	StatusEmpty     Status = "empty"

	// ToneSuccess is the shared green of a satisfied day.
	ToneSuccess Tone = "success"
	// ToneAccent is the habit's own colour: counted toward a weekly quota
	// that is not yet reached.
	ToneAccent  Tone = "accent"
	TonePartial Tone = "partial"
	ToneSkip    Tone = "skip"
	ToneFail    Tone = "fail"
	ToneNone    Tone = "none"
)

// DayStatus is the classified state of one habit on one day.
type DayStatus struct {
	Date       time.Time
	Key        string
	Status     Status
	Tone       Tone
	ResetCount int
	IsToday    bool
	IsStart    bool
}

// Classify assigns date its status for h. now and dayEndTime decide which
// day is "today": days after it are never failed.
func Classify(h models.Habit, date, now time.Time, dayEndTime string) DayStatus {
	todayKey := EffectiveTodayKey(now, dayEndTime)
	ds := DayStatus{
		Date:    utils.StartOfDay(date),
		Key:     utils.DayKey(date),
		IsToday: utils.DayKey(date) == todayKey,
	}

	switch h.Kind {
	case models.KindQuit:
		classifyQuit(h, &ds, todayKey)
	case models.KindWeight:
		classifyWeight(h, &ds)
	default:
		classifyProgress(h, date, &ds, todayKey)
	}

	ds.Tone = toneFor(h, date, ds.Status)
	return ds
}

func classifyQuit(h models.Habit, ds *DayStatus, todayKey string) {
	ds.Status = StatusEmpty
	var startKey string
	if h.QuitStart != nil {
		startKey = utils.DayKey(*h.QuitStart)
		ds.IsStart = ds.Key == startKey && startKey <= todayKey
	}

	// A logged relapse marks the day failed wherever it falls.
	if resets, _ := DayValue(h, ds.Key); resets > 0 {
		ds.ResetCount = int(resets)
		ds.Status = StatusFailed
		return
	}

	switch {
	case startKey == "" || ds.Key < startKey || ds.Key > todayKey:
	case ds.IsStart:
		ds.Status = StatusFailed
	default:
		ds.Status = StatusCompleted
	}
}

func classifyWeight(h models.Habit, ds *DayStatus) {
	v, skipped := DayValue(h, ds.Key)
	switch {
	case skipped:
		ds.Status = StatusSkipped
	case v > 0:
		ds.Status = StatusCompleted
	default:
		ds.Status = StatusEmpty
	}
}

func classifyProgress(h models.Habit, date time.Time, ds *DayStatus, todayKey string) {
	if _, skipped := DayValue(h, ds.Key); skipped {
		ds.Status = StatusSkipped
		return
	}

	if IsDayGoalMet(h, date) {
		ds.Status = StatusCompleted
		return
	}

	if hasActivity(h, date, ds.Key) {
		ds.Status = StatusPartial
		return
	}

	if ds.Key < todayKey && IsEligibleDay(h, date) {
		ds.Status = StatusFailed
		return
	}
	ds.Status = StatusEmpty
}

func hasActivity(h models.Habit, date time.Time, day string) bool {
	if structure := ResolveStructure(h, date); len(structure) > 0 {
		return StructureProgress(h, day, structure).Current > 0
	}
	v, _ := DayValue(h, day)
	return v > 0
}

func toneFor(h models.Habit, date time.Time, s Status) Tone {
	switch s {
	case StatusCompleted:
		if h.IsFlexible() && !h.IsQuit() && !IsWeeklyTargetMet(h, date) {
			return ToneAccent
		}
		return ToneSuccess
	case StatusPartial:
		return TonePartial
	case StatusSkipped:
		return ToneSkip
	case StatusFailed:
		return ToneFail
	default:
		return ToneNone
	}
}
