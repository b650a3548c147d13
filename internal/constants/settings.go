package constants

const (
	SettingDayEndTime           = "day_end_time"
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"

	DefaultDayEndTime           = "00:00"
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
)
