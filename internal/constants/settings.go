package constants

const (
	SettingTimezone    = "timezone"
	SettingDefaultUser = "default_user"
	SettingWeekStart   = "week_start"

	DefaultTimezone  = "Local" // Use system local timezone by default
	DefaultWeekStart = "sunday"
)
