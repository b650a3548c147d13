// Package render turns engine results into styled terminal text shared by
// the CLI commands and the TUI.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

var (
	successColor = lipgloss.Color("#22c55e")
	partialColor = lipgloss.Color("#f59e0b")
	failColor    = lipgloss.Color("#ef4444")
	skipColor    = lipgloss.Color("#a1a1aa")
	noneColor    = lipgloss.Color("#3f3f46")

	Title   = lipgloss.NewStyle().Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	Danger  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

// HabitColor resolves a palette name; unknown names fall back to blue.
func HabitColor(name string) lipgloss.Color {
	if hex, ok := constants.Palette[name]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(constants.Palette[constants.DefaultColor])
}

// ToneColor is the colour a tone is drawn with for h.
func ToneColor(h models.Habit, tone engine.Tone) lipgloss.Color {
	switch tone {
	case engine.ToneSuccess:
		return successColor
	case engine.ToneAccent:
		return HabitColor(h.Color)
	case engine.TonePartial:
		return partialColor
	case engine.ToneSkip:
		return skipColor
	case engine.ToneFail:
		return failColor
	default:
		return noneColor
	}
}

func glyph(ds engine.DayStatus) string {
	switch ds.Status {
	case engine.StatusCompleted:
		return "●"
	case engine.StatusPartial:
		return "◐"
	case engine.StatusSkipped:
		return "–"
	case engine.StatusFailed:
		if ds.ResetCount > 1 {
			if ds.ResetCount > 9 {
				return "+"
			}
			return strconv.Itoa(ds.ResetCount)
		}
		return "✕"
	default:
		return "·"
	}
}

// Cell renders one classified day as a single coloured glyph.
func Cell(h models.Habit, ds engine.DayStatus) string {
	style := lipgloss.NewStyle().Foreground(ToneColor(h, ds.Tone))
	if ds.IsToday {
		style = style.Underline(true)
	}
	return style.Render(glyph(ds))
}

// WeekStrip renders a Monday-start strip with a weekday header.
func WeekStrip(h models.Habit, days []engine.DayStatus) string {
	var head, cells []string
	for _, ds := range days {
		head = append(head, Muted.Render(models.WeekdayOf(ds.Date).Short()[:1]))
		cells = append(cells, Cell(h, ds))
	}
	return strings.Join(head, " ") + "\n" + strings.Join(cells, " ")
}

// MonthGrid renders a calendar month, Monday-first, one row per week.
func MonthGrid(h models.Habit, grid engine.MonthGrid) string {
	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%s %d", grid.Month, grid.Year)))
	b.WriteString("\n")
	b.WriteString(Muted.Render(" M  T  W  T  F  S  S"))
	b.WriteString("\n")

	col := 0
	for i := 0; i < grid.Leading; i++ {
		b.WriteString("   ")
		col++
	}
	for _, ds := range grid.Days {
		style := lipgloss.NewStyle().Foreground(ToneColor(h, ds.Tone))
		if ds.IsToday {
			style = style.Bold(true).Underline(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%2d", ds.Date.Day())))
		b.WriteString(" ")
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	return strings.TrimRight(b.String(), "\n ")
}

// Heatmap renders statuses in rows of seven.
func Heatmap(h models.Habit, days []engine.DayStatus) string {
	var rows []string
	var row []string
	for i, ds := range days {
		row = append(row, Cell(h, ds))
		if (i+1)%7 == 0 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

// ProgressBar draws a bar of width cells filled to pct (0-100).
func ProgressBar(pct float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	pct = math.Max(0, math.Min(100, pct))
	filled := int(math.Round(pct / 100 * float64(width)))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(noneColor).Render(strings.Repeat("░", width-filled))
}

// Number formats a value without a trailing ".0".
func Number(v float64) string {
	return utils.FormatNumber(v)
}

// Reading describes a day's value against its goal, e.g. "15/30 minutes".
func Reading(h models.Habit, r engine.Reading) string {
	if r.Skipped {
		return "skipped"
	}
	if r.Checklist != nil {
		return fmt.Sprintf("%d/%d items", r.Checklist.Current, r.Checklist.Total)
	}
	return fmt.Sprintf("%s/%s %s", Number(r.Value), Number(r.Goal), h.Unit)
}

// Elapsed formats a quit duration, e.g. "12d 04h 10m".
func Elapsed(e engine.Elapsed) string {
	return fmt.Sprintf("%dd %02dh %02dm", e.Days, e.Hours, e.Minutes)
}

// Trend formats a weight trend against its target.
func Trend(h models.Habit, t engine.Trend) string {
	if t.Samples == 0 {
		return "no measurements yet"
	}
	out := fmt.Sprintf("%s %s (%+.1f since first)", Number(t.Latest), h.Unit, t.Change)
	if h.Goal > 0 {
		out += fmt.Sprintf(", %.1f %s to target", math.Abs(t.ToTarget), h.Unit)
	}
	if !t.OnTrack {
		out += " " + Warning.Render("off track")
	}
	return out
}

// Streak formats a streak with the unit its policy counts in.
func Streak(h models.Habit) string {
	switch {
	case h.IsWeight():
		return ""
	case h.IsFlexible() && !h.IsQuit():
		return fmt.Sprintf("%d wk", h.Streak)
	default:
		return fmt.Sprintf("%d d", h.Streak)
	}
}

// Summary is the one-line progress text a habit shows for date.
func Summary(h models.Habit, date, now time.Time) string {
	switch h.Kind {
	case models.KindQuit:
		since, ok := engine.QuitSince(h, date)
		if !ok {
			return "not started"
		}
		return "clean " + Elapsed(engine.QuitElapsed(since, now))
	case models.KindWeight:
		if v, _ := engine.DayValue(h, utils.DayKey(date)); v > 0 {
			return fmt.Sprintf("%s %s", Number(v), h.Unit)
		}
		return Trend(h, engine.WeightTrend(h))
	}

	r := engine.Read(h, date)
	text := Reading(h, r)
	if r.Skipped {
		return text
	}
	bar := ProgressBar(r.Percentage, 10, HabitColor(h.Color))
	if h.IsFlexible() {
		text += Muted.Render(fmt.Sprintf("  %d/%d this week", engine.WeeklyCompletions(h, date), engine.WeeklyTarget(h)))
	}
	return bar + " " + text
}
