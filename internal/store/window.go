package store

import "time"

// DayBounds returns 00:00:00.000 and 23:59:59.999 of the local calendar
// day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// RangeBounds spans from the start of from's day to the end of to's day.
func RangeBounds(from, to time.Time) (time.Time, time.Time) {
	start, _ := DayBounds(from)
	_, end := DayBounds(to)
	return start, end
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
