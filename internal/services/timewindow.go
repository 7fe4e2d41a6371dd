package services

import (
	"fmt"
	"time"
)

// TimeWindow is one of six fixed day parts.
type TimeWindow string

const (
	WindowEarlyMorning   TimeWindow = "early_morning"
	WindowLateMorning    TimeWindow = "late_morning"
	WindowEarlyAfternoon TimeWindow = "early_afternoon"
	WindowLateAfternoon  TimeWindow = "late_afternoon"
	WindowEarlyEvening   TimeWindow = "early_evening"
	WindowNight          TimeWindow = "night"
)

// TimeWindows lists the day parts in chronological order.
var TimeWindows = []TimeWindow{
	WindowEarlyMorning,
	WindowLateMorning,
	WindowEarlyAfternoon,
	WindowLateAfternoon,
	WindowEarlyEvening,
	WindowNight,
}

// TimeWindowOf classifies a timestamp by hour of day in the timestamp's own
// location. Boundaries are half-open: hour 9 belongs to late_morning.
func TimeWindowOf(t time.Time) TimeWindow {
	switch hour := t.Hour(); {
	case hour < 9:
		return WindowEarlyMorning
	case hour < 12:
		return WindowLateMorning
	case hour < 15:
		return WindowEarlyAfternoon
	case hour < 18:
		return WindowLateAfternoon
	case hour < 21:
		return WindowEarlyEvening
	default:
		return WindowNight
	}
}

var timeWindowLabels = map[TimeWindow]string{
	WindowEarlyMorning:   "Early Morning (6-9am)",
	WindowLateMorning:    "Late Morning (9am-12pm)",
	WindowEarlyAfternoon: "Early Afternoon (12-3pm)",
	WindowLateAfternoon:  "Late Afternoon (3-6pm)",
	WindowEarlyEvening:   "Early Evening (6-9pm)",
	WindowNight:          "Night (9pm+)",
}

// FormatTimeWindow renders a human-readable label for a day part.
func FormatTimeWindow(w TimeWindow) string {
	if label, ok := timeWindowLabels[w]; ok {
		return label
	}
	return string(w)
}

// WeekIdentifier renders the ISO-8601 year-week of a timestamp as "YYYY-Www".
// The ISO year can differ from the calendar year around January 1st, which is
// exactly why this is used as the grouping key.
func WeekIdentifier(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
