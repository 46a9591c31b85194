package util

import "fmt"

const (
	millisPerSecond int64 = 1000
	millisPerMinute       = 60 * millisPerSecond
	millisPerHour         = 60 * millisPerMinute
	millisPerDay          = 24 * millisPerHour
)

// FormatTimestampMillis converts a non-negative unix millisecond timestamp
// into a "YYYY-MM-DD HH:MM:SS+00:00" string without going through the
// platform calendar. It reproduces the calendar math of the web container
// tag this service mirrors: a plain year%4 leap rule with no century
// correction, and exact midnights rendering as hour 24 of the previous day.
// Keep the quirks, both sides of the pipeline must format identically.
func FormatTimestampMillis(timestamp int64) string {
	fourYearsInMillis := millisPerDay * (365*4 + 1)
	year := 1970 + (timestamp/fourYearsInMillis)*4
	timestamp = timestamp % fourYearsInMillis

	for {
		yearInMillis := millisPerDay * 365
		if year%4 == 0 {
			yearInMillis = millisPerDay * 366
		}
		if timestamp-yearInMillis < 0 {
			break
		}
		timestamp = timestamp - yearInMillis
		year = year + 1
	}

	daysByMonth := [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if year%4 == 0 {
		daysByMonth[1] = 29
	}

	var month int64
	for i := range daysByMonth {
		monthInMillis := daysByMonth[i] * millisPerDay
		// Strictly greater, a timestamp landing exactly on the boundary
		// stays in the earlier month.
		if timestamp > monthInMillis {
			timestamp = timestamp - monthInMillis
		} else {
			month = int64(i + 1)
			break
		}
	}

	// Ceiling, the first millisecond of a day belongs to that day.
	date := (timestamp + millisPerDay - 1) / millisPerDay
	timestamp = timestamp - (date-1)*millisPerDay
	hours := timestamp / millisPerHour
	timestamp = timestamp - hours*millisPerHour
	minutes := timestamp / millisPerMinute
	timestamp = timestamp - minutes*millisPerMinute
	seconds := timestamp / millisPerSecond

	return fmt.Sprintf("%d-%02d-%02d %02d:%02d:%02d+00:00",
		year, month, date, hours, minutes, seconds)
}
