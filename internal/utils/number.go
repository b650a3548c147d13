package utils

import "strconv"

// FormatNumber formats v without a trailing ".0", e.g. 2.5 or 30.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
