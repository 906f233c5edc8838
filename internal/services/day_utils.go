package services

import "time"

// DateOnly truncates a timestamp to its calendar day. The cycle engine
// compares calendar days only, never sub-day precision.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func AddDays(t time.Time, days int) time.Time {
	return DateOnly(t).AddDate(0, 0, days)
}

// DifferenceInDays returns the count of whole calendar days from earlier to
// later, negative when later precedes earlier.
func DifferenceInDays(later, earlier time.Time) int {
	return int(DateOnly(later).Sub(DateOnly(earlier)).Hours() / 24)
}

func betweenInclusive(day, start, end time.Time) bool {
	day = DateOnly(day)
	return !day.Before(DateOnly(start)) && !day.After(DateOnly(end))
}
