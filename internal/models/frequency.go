package models

import (
	"encoding/json"
	"strings"
)

type legacyFrequency struct {
	Type        *FrequencyType `json:"type"`
	Days        []int          `json:"days"`
	DaysPerWeek *int           `json:"daysPerWeek"`
	Text        *string        `json:"text"`
}

// ParseFrequencyConfig reads a frequency policy encoded as JSON in a free-text
// description. Fields present in the JSON override the every-day defaults.
// Descriptions that are not '{'-prefixed, or that fail to parse, yield the
// defaults. The returned notes are the embedded "text" field when the JSON
// parsed, otherwise the description itself.
func ParseFrequencyConfig(description string) (FrequencyConfig, string) {
	cfg := DefaultFrequency()
	if !strings.HasPrefix(description, "{") {
		return cfg, description
	}

	var raw legacyFrequency
	if err := json.Unmarshal([]byte(description), &raw); err != nil {
		return cfg, description
	}

	if raw.Type != nil {
		switch *raw.Type {
		case FrequencyEvery, FrequencySpecific, FrequencyDaysPer:
			cfg.Type = *raw.Type
		}
	}
	if raw.Days != nil {
		days := make([]Weekday, 0, len(raw.Days))
		for _, d := range raw.Days {
			if wd := Weekday(d); wd.Valid() {
				days = append(days, wd)
			}
		}
		cfg.Days = days
	}
	if raw.DaysPerWeek != nil {
		cfg.DaysPerWeek = *raw.DaysPerWeek
	}

	notes := ""
	if raw.Text != nil {
		notes = *raw.Text
	}
	return cfg, notes
}

// EncodeFrequencyConfig writes cfg in the description encoding read by
// ParseFrequencyConfig.
func EncodeFrequencyConfig(cfg FrequencyConfig, notes string) string {
	days := make([]int, 0, len(cfg.Days))
	for _, d := range cfg.Days {
		days = append(days, int(d))
	}
	t := cfg.Type
	dpw := cfg.DaysPerWeek
	data, err := json.Marshal(legacyFrequency{Type: &t, Days: days, DaysPerWeek: &dpw, Text: &notes})
	if err != nil {
		return notes
	}
	return string(data)
}
