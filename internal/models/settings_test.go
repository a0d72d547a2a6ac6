package models

import (
	"testing"
	"time"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"defaults", Settings{Timezone: "Local", DefaultUser: "local", WeekStart: "sunday"}, false},
		{"iana zone monday", Settings{Timezone: "Europe/Berlin", DefaultUser: "ann", WeekStart: "Monday"}, false},
		{"empty week start", Settings{Timezone: "UTC", DefaultUser: "ann"}, false},
		{"bad timezone", Settings{Timezone: "Mars/Olympus", DefaultUser: "ann"}, true},
		{"empty user", Settings{Timezone: "UTC", DefaultUser: "  "}, true},
		{"bad week start", Settings{Timezone: "UTC", DefaultUser: "ann", WeekStart: "friday"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsFirstWeekday(t *testing.T) {
	if got := (Settings{WeekStart: "monday"}).FirstWeekday(); got != time.Monday {
		t.Errorf("expected Monday, got %v", got)
	}
	if got := (Settings{}).FirstWeekday(); got != time.Sunday {
		t.Errorf("expected Sunday by default, got %v", got)
	}
}

func TestSettingsRows(t *testing.T) {
	in := Settings{Timezone: "Europe/Berlin", DefaultUser: "ann", WeekStart: "monday"}

	var out Settings
	for _, row := range in.Rows() {
		if !out.SetRow(row[0], row[1]) {
			t.Errorf("SetRow rejected known key %q", row[0])
		}
	}
	if out != in {
		t.Errorf("rows round trip = %+v, want %+v", out, in)
	}
	if out.SetRow("theme", "dark") {
		t.Error("SetRow accepted an unknown key")
	}
}
