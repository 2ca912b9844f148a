package utils

import "time"

// DateLayout is the canonical YYYY-MM-DD form used for date keys.
const DateLayout = "2006-01-02"

// Today returns the calendar date of now in loc, normalized to midnight UTC.
// Postgres date columns come back from GORM as midnight-UTC instants, so
// normalizing here keeps every date comparison in one representation.
func Today(now time.Time, loc *time.Location) time.Time {
	year, month, day := now.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates any timestamp to its midnight-UTC calendar date.
func Normalize(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
