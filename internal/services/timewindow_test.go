package services

import (
	"testing"
	"time"
)

func TestTimeWindowOf(t *testing.T) {
	cases := []struct {
		hour int
		want TimeWindow
	}{
		{0, WindowEarlyMorning},
		{8, WindowEarlyMorning},
		{9, WindowLateMorning}, // boundary belongs to the upper bucket
		{11, WindowLateMorning},
		{12, WindowEarlyAfternoon},
		{14, WindowEarlyAfternoon},
		{15, WindowLateAfternoon},
		{17, WindowLateAfternoon},
		{18, WindowEarlyEvening},
		{20, WindowEarlyEvening},
		{21, WindowNight},
		{23, WindowNight},
	}
	for _, c := range cases {
		ts := time.Date(2025, 6, 15, c.hour, 30, 0, 0, time.UTC)
		if got := TimeWindowOf(ts); got != c.want {
			t.Fatalf("hour %d: got %s, want %s", c.hour, got, c.want)
		}
	}
}

func TestWeekIdentifier(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		// Thursday Jan 2, 2025 is ISO week 1 of 2025, not 2024's last week.
		{time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC), "2025-W01"},
		// Jan 1, 2023 is a Sunday and belongs to 2022's last ISO week.
		{time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), "2022-W52"},
		// Dec 29, 2025 is a Monday starting ISO week 1 of 2026.
		{time.Date(2025, 12, 29, 12, 0, 0, 0, time.UTC), "2026-W01"},
		{time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC), "2025-W42"},
	}
	for _, c := range cases {
		if got := WeekIdentifier(c.date); got != c.want {
			t.Fatalf("%s: got %s, want %s", c.date.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestFormatTimeWindow(t *testing.T) {
	if got := FormatTimeWindow(WindowNight); got != "Night (9pm+)" {
		t.Fatalf("unexpected label: %s", got)
	}
	if got := FormatTimeWindow(TimeWindow("weird")); got != "weird" {
		t.Fatalf("unknown window should echo its name, got %s", got)
	}
}
