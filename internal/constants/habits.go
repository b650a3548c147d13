package constants

const (
	// SkipValue marks a day as explicitly skipped. Arithmetic never produces it.
	SkipValue = -1

	// QuitStartPrefix precedes the start timestamp in legacy quit descriptions.
	QuitStartPrefix = "Start: "

	DefaultIncrement = 1
	DefaultColor     = "blue"
	DefaultGoal      = 1

	// GraceCutoffMinutes bounds the post-midnight grace window. A day end time
	// strictly between midnight and this many minutes extends the previous day.
	GraceCutoffMinutes = 12 * 60

	// Palette maps habit colour names to hex values.
	ColorRed     = "red"
	ColorOrange  = "orange"
	ColorAmber   = "amber"
	ColorEmerald = "emerald"
	ColorTeal    = "teal"
	ColorCyan    = "cyan"
	ColorBlue    = "blue"
	ColorIndigo  = "indigo"
	ColorViolet  = "violet"
	ColorPurple  = "purple"
	ColorFuchsia = "fuchsia"
	ColorPink    = "pink"
	ColorRose    = "rose"
	ColorZinc    = "zinc"
)

// Palette is the set of selectable habit colours.
var Palette = map[string]string{
	ColorRed:     "#ef4444",
	ColorOrange:  "#f97316",
	ColorAmber:   "#f59e0b",
	ColorEmerald: "#10b981",
	ColorTeal:    "#14b8a6",
	ColorCyan:    "#06b6d4",
	ColorBlue:    "#3b82f6",
	ColorIndigo:  "#6366f1",
	ColorViolet:  "#8b5cf6",
	ColorPurple:  "#a855f7",
	ColorFuchsia: "#d946ef",
	ColorPink:    "#ec4899",
	ColorRose:    "#f43f5e",
	ColorZinc:    "#71717a",
}
