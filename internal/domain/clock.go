package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay is the modulus for all clock-of-day arithmetic.
	MinutesPerDay = 24 * 60

	// DefaultStartMinute is 09:00, the start of a flexible first activity
	// unless configured otherwise.
	DefaultStartMinute = 9 * 60

	// DefaultDayLength is the seven hour budget used when nothing else is configured.
	DefaultDayLength = 7 * 60
)

// Clock supplies the current wall-clock time. It is the only impure
// dependency of the engine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Useful for tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// ClockAt returns a FixedClock pinned to the given minute of an arbitrary day.
func ClockAt(minute int) FixedClock {
	m := WrapMinutes(minute)
	return FixedClock{T: time.Date(2025, time.March, 15, m/60, m%60, 0, 0, time.Local)}
}

// MinuteOfDay converts t to minutes since local midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// WrapMinutes folds any minute value into [0, MinutesPerDay).
func WrapMinutes(v int) int {
	return ((v % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
}

// ParseClock parses "HH:MM" (hours may be a single digit) into minutes since midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, &ValidationError{Field: "start", Value: s, Err: ErrInvalidClock}
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 || !isDigits(hh) {
		return 0, &ValidationError{Field: "start", Value: s, Err: ErrInvalidClock}
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || !isDigits(mm) {
		return 0, &ValidationError{Field: "start", Value: s, Err: ErrInvalidClock}
	}
	return h*60 + m, nil
}

// FormatClock renders a minute value as zero-padded "HH:MM", wrapping across midnight.
func FormatClock(minute int) string {
	m := WrapMinutes(minute)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
