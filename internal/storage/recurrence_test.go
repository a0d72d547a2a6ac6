package storage

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/models"
)

func TestRecurrenceRoundTrip(t *testing.T) {
	date, err := calendar.Parse("2024-06-15")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		rec  models.Recurrence
		cols RecurrenceColumns
	}{
		{
			name: "every day",
			rec:  models.EveryDay{},
			cols: RecurrenceColumns{Type: "daily", Days: "[]"},
		},
		{
			name: "weekly",
			rec:  models.WeeklyOn{Days: []string{"monday", "wednesday"}},
			cols: RecurrenceColumns{Type: "weekly", Days: `["monday","wednesday"]`},
		},
		{
			name: "on date",
			rec:  models.OnDate{Date: date},
			cols: RecurrenceColumns{Type: "date", Days: "[]", Date: sql.NullString{String: "2024-06-15", Valid: true}},
		},
		{
			name: "unrecognized tag survives",
			rec:  models.Unrecognized{Tag: "monthly"},
			cols: RecurrenceColumns{Type: "monthly", Days: "[]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := EncodeRecurrence(tt.rec)
			if err != nil {
				t.Fatalf("EncodeRecurrence failed: %v", err)
			}
			if cols != tt.cols {
				t.Errorf("EncodeRecurrence() = %+v, want %+v", cols, tt.cols)
			}
			if got := DecodeRecurrence(cols); !reflect.DeepEqual(got, tt.rec) {
				t.Errorf("DecodeRecurrence() = %#v, want %#v", got, tt.rec)
			}
		})
	}
}

func TestEncodeRecurrence_Nil(t *testing.T) {
	if _, err := EncodeRecurrence(nil); err == nil {
		t.Error("expected error for nil recurrence")
	}
}

func TestDecodeRecurrence_Damaged(t *testing.T) {
	if got := DecodeRecurrence(RecurrenceColumns{Type: "weekly", Days: "not json"}); !reflect.DeepEqual(got, models.WeeklyOn{}) {
		t.Errorf("damaged days decoded to %#v, want empty WeeklyOn", got)
	}
	if got := DecodeRecurrence(RecurrenceColumns{Type: "date"}); !reflect.DeepEqual(got, models.OnDate{}) {
		t.Errorf("missing date decoded to %#v, want empty OnDate", got)
	}
	bad := RecurrenceColumns{Type: "date", Date: sql.NullString{String: "15/06/2024", Valid: true}}
	if got := DecodeRecurrence(bad); !reflect.DeepEqual(got, models.OnDate{}) {
		t.Errorf("bad date decoded to %#v, want empty OnDate", got)
	}
}
