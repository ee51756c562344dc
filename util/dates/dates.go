package dates

import "time"

// Today is the current UTC date at midnight. Every stored date goes
// through Day so rows compare consistently across drivers.
func Today() time.Time { return Day(time.Now()) }

func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
