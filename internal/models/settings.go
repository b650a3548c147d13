package models

// Settings represents application-wide settings
type Settings struct {
	DayEndTime           string `json:"day_end_time"`          // when "today" rolls over, e.g. "02:00"
	Timezone             string `json:"timezone"`              // IANA timezone name or "Local"
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reminders are delivered
}
