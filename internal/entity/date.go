package entity

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout renders a calendar date as weekday, month, day and year, e.g. "Mon Mar 02 2020".
const DateLayout = "Mon Jan 02 2006"

var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	DateLayout,
}

// ParseDate accepts the date forms clients send and truncates the result to a
// calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateInputLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// CalendarDate drops the time of day, keeping the year, month and day as seen in t's location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
