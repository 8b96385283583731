package utils

import "time"

// NextStandardExpiration returns the next monthly options expiration (third
// Friday) strictly after the given day, formatted YYYY-MM-DD. Used by
// autofill to suggest an expiration for the analysis form.
func NextStandardExpiration(today time.Time) string {
	third := thirdFriday(today.Year(), today.Month(), today.Location())

	if !today.Before(third) {
		next := third.AddDate(0, 1, 0)
		third = thirdFriday(next.Year(), next.Month(), today.Location())
	}

	return third.Format("2006-01-02")
}

func thirdFriday(year int, month time.Month, loc *time.Location) time.Time {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	firstFriday := firstDay
	for firstFriday.Weekday() != time.Friday {
		firstFriday = firstFriday.AddDate(0, 0, 1)
	}
	return firstFriday.AddDate(0, 0, 14)
}
