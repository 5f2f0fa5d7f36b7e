package utils

import (
	"fmt"
	"time"
)

// ClockTime is a time of day in minutes since midnight. Schedules never
// cross midnight, so plain minute arithmetic is sufficient.
type ClockTime int

// ParseClock parses an "HH:MM" clock string.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) Add(minutes int) ClockTime {
	return c + ClockTime(minutes)
}

// Sub returns c - other in minutes.
func (c ClockTime) Sub(other ClockTime) int {
	return int(c - other)
}

func (c ClockTime) Hour() int {
	return int(c) / 60
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
