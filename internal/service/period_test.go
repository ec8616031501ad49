package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestNextPeriodEnd(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"midweek", date(2025, time.March, 26), "2025-03-28"},
		{"friday is its own period end", date(2025, time.March, 21), "2025-03-21"},
		{"saturday rolls to next friday", date(2025, time.March, 22), "2025-03-28"},
		{"year boundary", date(2025, time.December, 31), "2026-01-02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextPeriodEnd(tc.now))
		})
	}
}

func TestIsMonthEnd(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"mid-month friday", date(2025, time.March, 21), false},
		{"last friday of march", date(2025, time.March, 26), true},
		{"last friday of december", date(2025, time.December, 26), true},
		{"new year week is not a month end", date(2025, time.December, 31), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMonthEnd(tc.now))
		})
	}
}
