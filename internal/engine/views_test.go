package engine

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

func TestWeekStrip(t *testing.T) {
	h := countHabit(1, models.History{"2024-06-12": models.NumericEntry(1)})
	strip := WeekStrip(h, day(t, "2024-06-14"), at(t, "2024-06-14", "12:00"), "00:00")
	if len(strip) != 7 {
		t.Fatalf("len(strip) = %d, want 7", len(strip))
	}
	if strip[0].Key != "2024-06-10" || strip[6].Key != "2024-06-16" {
		t.Errorf("strip spans %s..%s, want Monday..Sunday", strip[0].Key, strip[6].Key)
	}
	want := []Status{StatusFailed, StatusFailed, StatusCompleted, StatusFailed, StatusEmpty, StatusEmpty, StatusEmpty}
	for i, s := range strip {
		if s.Status != want[i] {
			t.Errorf("strip[%d] (%s) = %s, want %s", i, s.Key, s.Status, want[i])
		}
	}
	if !strip[4].IsToday {
		t.Error("Friday should be today")
	}
}

func TestBuildMonthGrid(t *testing.T) {
	h := countHabit(1, nil)
	grid := BuildMonthGrid(h, 2024, time.June, time.UTC, at(t, "2024-06-15", "12:00"), "00:00")
	// June 1st 2024 was a Saturday.
	if grid.Leading != 5 {
		t.Errorf("Leading = %d, want 5", grid.Leading)
	}
	if len(grid.Days) != 30 {
		t.Errorf("len(Days) = %d, want 30", len(grid.Days))
	}
}

func TestViewsAgree(t *testing.T) {
	h := flexibleHabit(3, models.History{
		"2024-06-10": models.NumericEntry(1),
		"2024-06-11": models.SkippedEntry(),
		"2024-06-13": models.NumericEntry(1),
	})
	now := at(t, "2024-06-14", "12:00")

	strip := WeekStrip(h, day(t, "2024-06-10"), now, "00:00")
	grid := BuildMonthGrid(h, 2024, time.June, time.UTC, now, "00:00")
	heat := Heatmap(h, RangeDays(RangeMonth, day(t, "2024-06-10")), now, "00:00")

	for _, s := range strip {
		g := grid.Days[s.Date.Day()-1]
		m := heat[s.Date.Day()-1]
		if s != g || s != m {
			t.Errorf("%s: strip %+v, grid %+v, heatmap %+v", s.Key, s, g, m)
		}
	}
}

func TestRangeDays(t *testing.T) {
	view := day(t, "2024-02-14")
	tests := []struct {
		r         ReportRange
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{RangeWeek, 7, "2024-02-12", "2024-02-18"},
		{RangeMonth, 29, "2024-02-01", "2024-02-29"},
		{RangeYear, 366, "2024-01-01", "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			days := RangeDays(tt.r, view)
			if len(days) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(days), tt.wantLen)
			}
			if got := utils.DayKey(days[0]); got != tt.wantFirst {
				t.Errorf("first = %s, want %s", got, tt.wantFirst)
			}
			if got := utils.DayKey(days[len(days)-1]); got != tt.wantLast {
				t.Errorf("last = %s, want %s", got, tt.wantLast)
			}
		})
	}
}

func TestCompletionRate(t *testing.T) {
	h := countHabit(1, models.History{
		"2024-06-10": models.NumericEntry(1),
		"2024-06-11": models.NumericEntry(1),
	})
	days := RangeDays(RangeWeek, day(t, "2024-06-10"))
	if got := CompletionRate(h, days, at(t, "2024-06-16", "12:00"), "00:00"); got != 29 {
		t.Errorf("CompletionRate() = %d, want 29", got)
	}
	if got := CompletionRate(h, nil, at(t, "2024-06-16", "12:00"), "00:00"); got != 0 {
		t.Errorf("CompletionRate(no days) = %d, want 0", got)
	}
}
