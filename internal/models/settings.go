package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone    string `json:"timezone"`     // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	DefaultUser string `json:"default_user"` // user id used when --user is not given
	WeekStart   string `json:"week_start"`   // first column of the calendar grid, "sunday" or "monday"
}

// Validate checks the values a user can change with the settings command.
func (s Settings) Validate() error {
	if !calendar.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	if strings.TrimSpace(s.DefaultUser) == "" {
		return fmt.Errorf("default user cannot be empty")
	}
	switch strings.ToLower(strings.TrimSpace(s.WeekStart)) {
	case "", "sunday", "monday":
		return nil
	default:
		return fmt.Errorf("invalid week start %q (expected sunday or monday)", s.WeekStart)
	}
}

// FirstWeekday returns the weekday calendar grids start on.
func (s Settings) FirstWeekday() time.Weekday {
	if strings.EqualFold(strings.TrimSpace(s.WeekStart), "monday") {
		return time.Monday
	}
	return time.Sunday
}

// Rows returns the settings as the key/value rows of the settings table.
func (s Settings) Rows() [][2]string {
	return [][2]string{
		{constants.SettingTimezone, s.Timezone},
		{constants.SettingDefaultUser, s.DefaultUser},
		{constants.SettingWeekStart, s.WeekStart},
	}
}

// SetRow assigns the value stored under key and reports whether the key is
// known.
func (s *Settings) SetRow(key, value string) bool {
	switch key {
	case constants.SettingTimezone:
		s.Timezone = value
	case constants.SettingDefaultUser:
		s.DefaultUser = value
	case constants.SettingWeekStart:
		s.WeekStart = value
	default:
		return false
	}
	return true
}
