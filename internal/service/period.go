package service

import "time"

// NextPeriodEnd returns the upcoming Friday (today when today is a Friday)
// that closes the current reporting period, formatted as YYYY-MM-DD.
func NextPeriodEnd(now time.Time) string {
	return nextFriday(now).Format("2006-01-02")
}

// IsMonthEnd reports whether the period ending at the upcoming Friday is the
// last one of its calendar month, i.e. the following Friday falls in a
// different month.
func IsMonthEnd(now time.Time) bool {
	friday := nextFriday(now)
	return friday.Month() != friday.AddDate(0, 0, 7).Month()
}

func nextFriday(now time.Time) time.Time {
	now = now.UTC()
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}
