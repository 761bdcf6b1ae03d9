// Package duration formats durations for humans.
package duration

import (
	"time"

	"github.com/dustin/go-humanize/english"
)

const (
	day   = 24 * time.Hour
	year  = 365 * day
	month = 30 * day
)

type unit struct {
	size time.Duration
	name string
}

var units = []unit{
	{year, "year"},
	{month, "month"},
	{day, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
	{time.Second, "second"},
}

// Format returns d as a human-readable string, using at most the two largest non-zero units.
// Months are always 30 days and years are always 365 days.
func Format(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	s := make([]string, 0, 2)
	for _, u := range units {
		if len(s) == 2 {
			break
		}

		n := int(d / u.size)
		if n == 0 {
			// don't skip units in the middle of a series, "1 year and 5 seconds" isn't useful
			if len(s) > 0 {
				break
			}
			continue
		}
		d -= time.Duration(n) * u.size

		s = append(s, english.Plural(n, u.name, ""))
	}

	if len(s) == 0 {
		return "0 seconds"
	}
	return english.OxfordWordSeries(s, "and")
}
