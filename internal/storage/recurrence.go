package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// RecurrenceColumns is the stored form of a recurrence rule.
type RecurrenceColumns struct {
	Type string
	Days string // JSON array of weekday names
	Date sql.NullString
}

// EncodeRecurrence flattens a recurrence rule into its table columns.
func EncodeRecurrence(rec models.Recurrence) (RecurrenceColumns, error) {
	cols := RecurrenceColumns{Days: "[]"}
	switch r := rec.(type) {
	case models.EveryDay:
		cols.Type = string(constants.RecurrenceDaily)
	case models.WeeklyOn:
		cols.Type = string(constants.RecurrenceWeekly)
		days := r.Days
		if days == nil {
			days = []string{}
		}
		data, err := json.Marshal(days)
		if err != nil {
			return RecurrenceColumns{}, fmt.Errorf("failed to marshal recurrence days: %w", err)
		}
		cols.Days = string(data)
	case models.OnDate:
		cols.Type = string(constants.RecurrenceDate)
		if !r.Date.IsZero() {
			cols.Date = sql.NullString{String: r.Date.String(), Valid: true}
		}
	case models.Unrecognized:
		cols.Type = r.Tag
	default:
		return RecurrenceColumns{}, fmt.Errorf("%w: missing recurrence", models.ErrInvalidRecurrence)
	}
	return cols, nil
}

// DecodeRecurrence rebuilds a recurrence rule from its table columns.
// Unknown tags and unreadable payloads decode to a rule that is never due.
func DecodeRecurrence(cols RecurrenceColumns) models.Recurrence {
	switch constants.RecurrenceType(cols.Type) {
	case constants.RecurrenceDaily:
		return models.EveryDay{}
	case constants.RecurrenceWeekly:
		var days []string
		if cols.Days != "" {
			if err := json.Unmarshal([]byte(cols.Days), &days); err != nil {
				logger.Warn("unreadable recurrence days", "days", cols.Days, "error", err)
				return models.WeeklyOn{}
			}
		}
		return models.WeeklyOn{Days: days}
	case constants.RecurrenceDate:
		if !cols.Date.Valid {
			return models.OnDate{}
		}
		d, err := calendar.Parse(cols.Date.String)
		if err != nil {
			logger.Warn("unreadable recurrence date", "date", cols.Date.String, "error", err)
			return models.OnDate{}
		}
		return models.OnDate{Date: d}
	default:
		logger.Warn("unknown recurrence type", "type", cols.Type)
		return models.Unrecognized{Tag: cols.Type}
	}
}
