package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) Date {
	t.Helper()
	d, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return d
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2024-06-15", want: Date{2024, time.June, 15}},
		{input: " 2024-01-01 ", want: Date{2024, time.January, 1}},
		{input: "2024-02-29", want: Date{2024, time.February, 29}},
		{input: "2023-02-29", wantErr: true},
		{input: "2024-6-15", wantErr: true},
		{input: "2024-06-15T10:00:00Z", wantErr: true},
		{input: "", wantErr: true},
		{input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	d := Date{2024, time.March, 5}
	if d.String() != "2024-03-05" {
		t.Errorf("String() = %q, want %q", d.String(), "2024-03-05")
	}
	if (Date{}).String() != "" {
		t.Errorf("zero Date String() = %q, want empty", (Date{}).String())
	}
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start string
		days  int
		want  string
	}{
		{"month end", "2024-01-31", 1, "2024-02-01"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"non-leap february", "2023-02-28", 1, "2023-03-01"},
		{"year end", "2023-12-31", 1, "2024-01-01"},
		{"back over year", "2024-01-01", -1, "2023-12-31"},
		{"back over month", "2024-03-01", -1, "2024-02-29"},
		{"window start", "2024-06-30", -29, "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.start).AddDays(tt.days).String()
			if got != tt.want {
				t.Errorf("%s + %d = %s, want %s", tt.start, tt.days, got, tt.want)
			}
		})
	}
}

func TestAddDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 2024-03-10 is 23 hours long in New York
	day := FromTime(time.Date(2024, time.March, 10, 23, 30, 0, 0, loc), loc)
	if day.String() != "2024-03-10" {
		t.Fatalf("FromTime = %s, want 2024-03-10", day)
	}
	if got := day.AddDays(-1).String(); got != "2024-03-09" {
		t.Errorf("AddDays(-1) = %s, want 2024-03-09", got)
	}
	if got := day.AddDays(1).String(); got != "2024-03-11" {
		t.Errorf("AddDays(1) = %s, want 2024-03-11", got)
	}
}

func TestFromTimeUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 20:00 UTC on the 14th is already the 15th in Tokyo
	instant := time.Date(2024, time.June, 14, 20, 0, 0, 0, time.UTC)
	if got := FromTime(instant, time.UTC).String(); got != "2024-06-14" {
		t.Errorf("FromTime(UTC) = %s, want 2024-06-14", got)
	}
	if got := FromTime(instant, tokyo).String(); got != "2024-06-15" {
		t.Errorf("FromTime(Tokyo) = %s, want 2024-06-15", got)
	}
}

func TestCompare(t *testing.T) {
	a := mustParse(t, "2024-01-31")
	b := mustParse(t, "2024-02-01")

	if !a.Before(b) || a.After(b) || a.Equal(b) {
		t.Errorf("expected %s before %s", a, b)
	}
	if !b.After(a) {
		t.Errorf("expected %s after %s", b, a)
	}
	if !a.Equal(New(2024, time.February, 0)) {
		t.Errorf("expected normalized New to equal %s", a)
	}
}

func TestDaysUntil(t *testing.T) {
	a := mustParse(t, "2024-02-01")
	b := mustParse(t, "2024-03-01")
	if got := a.DaysUntil(b); got != 29 {
		t.Errorf("DaysUntil = %d, want 29", got)
	}
	if got := b.DaysUntil(a); got != -29 {
		t.Errorf("DaysUntil = %d, want -29", got)
	}
}

func TestWeekdayName(t *testing.T) {
	tests := map[string]string{
		"2024-06-15": "saturday",
		"2024-06-16": "sunday",
		"2024-06-17": "monday",
		"2024-06-19": "wednesday",
		"2024-06-20": "thursday",
	}
	for input, want := range tests {
		if got := mustParse(t, input).WeekdayName(); got != want {
			t.Errorf("WeekdayName(%s) = %q, want %q", input, got, want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input string
		want  time.Weekday
		ok    bool
	}{
		{"monday", time.Monday, true},
		{"Monday", time.Monday, true},
		{" WED ", time.Wednesday, true},
		{"sun", time.Sunday, true},
		{"6", time.Saturday, true},
		{"7", 0, false},
		{"funday", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseWeekday(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseWeekday(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		days := MonthDays(tt.year, tt.month)
		if len(days) != tt.want {
			t.Errorf("MonthDays(%d, %s) has %d days, want %d", tt.year, tt.month, len(days), tt.want)
			continue
		}
		if days[0].Day != 1 || days[len(days)-1].Month != tt.month {
			t.Errorf("MonthDays(%d, %s) spans %s..%s", tt.year, tt.month, days[0], days[len(days)-1])
		}
	}
}

func TestTextMarshaling(t *testing.T) {
	type wrapper struct {
		On Date `json:"on"`
	}

	data, err := json.Marshal(wrapper{On: Date{2024, time.June, 15}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"on":"2024-06-15"}` {
		t.Errorf("Marshal = %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"on":"2024-01-02"}`), &w); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if w.On.String() != "2024-01-02" {
		t.Errorf("Unmarshal = %s, want 2024-01-02", w.On)
	}
}

func TestLoadLocation(t *testing.T) {
	for _, name := range []string{"", "Local"} {
		loc, err := LoadLocation(name)
		if err != nil || loc != time.Local {
			t.Errorf("LoadLocation(%q) = %v, %v; want time.Local", name, loc, err)
		}
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("ValidateTimezone accepted an invalid zone")
	}
}
