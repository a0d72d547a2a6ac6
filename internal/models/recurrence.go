package models

import (
	"errors"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/constants"
)

// ErrInvalidRecurrence is returned when a recurrence rule cannot be used to create or update a habit
var ErrInvalidRecurrence = errors.New("invalid recurrence")

// Recurrence is the rule deciding on which days a habit is due.
// The set of variants is closed: EveryDay, WeeklyOn, OnDate, and
// Unrecognized for stored tags this build does not understand.
type Recurrence interface {
	Type() constants.RecurrenceType
	isRecurrence()
}

// EveryDay is due on every calendar day.
type EveryDay struct{}

// WeeklyOn is due on the listed weekdays. Days holds lowercase full English
// weekday names ("monday" ... "sunday").
type WeeklyOn struct {
	Days []string
}

// OnDate is due on exactly one calendar date.
type OnDate struct {
	Date calendar.Date
}

// Unrecognized carries a stored recurrence tag that could not be decoded.
// It is never due.
type Unrecognized struct {
	Tag string
}

func (EveryDay) Type() constants.RecurrenceType {
	return constants.RecurrenceDaily
}

func (WeeklyOn) Type() constants.RecurrenceType {
	return constants.RecurrenceWeekly
}

func (OnDate) Type() constants.RecurrenceType {
	return constants.RecurrenceDate
}

func (u Unrecognized) Type() constants.RecurrenceType {
	return constants.RecurrenceType(u.Tag)
}

func (EveryDay) isRecurrence() {}
func (WeeklyOn) isRecurrence() {}
func (OnDate) isRecurrence() {}
func (Unrecognized) isRecurrence() {}
