package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/spf13/pflag"
)

// clockValue is an optional HH:MM flag.
type clockValue struct {
	minute int
	set    bool
}

var _ pflag.Value = (*clockValue)(nil)

func (v *clockValue) String() string {
	if !v.set {
		return ""
	}
	return domain.FormatClock(v.minute)
}

func (v *clockValue) Set(s string) error {
	m, err := domain.ParseClock(s)
	if err != nil {
		return err
	}
	v.minute, v.set = m, true
	return nil
}

func (v *clockValue) Type() string { return "HH:MM" }

// on returns the flag's time on the same day as ref, or nil when unset.
func (v *clockValue) on(ref time.Time) *time.Time {
	if !v.set {
		return nil
	}
	t := time.Date(ref.Year(), ref.Month(), ref.Day(), v.minute/60, v.minute%60, 0, 0, ref.Location())
	return &t
}

// clockOr pins the flag's time as a clock, falling back to c.
func (v *clockValue) clockOr(c domain.Clock) domain.Clock {
	if t := v.on(c.Now()); t != nil {
		return domain.FixedClock{T: *t}
	}
	return c
}

// parsePosition converts a 1-based position argument into an index of s.
func parsePosition(arg string, size int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: expected a number", arg)
	}
	if n < 1 || n > size {
		return 0, domain.IndexError(n-1, size)
	}
	return n - 1, nil
}

// parseHours converts a day length in hours into minutes.
func parseHours(arg string) (int, error) {
	h, err := strconv.ParseFloat(arg, 64)
	if err != nil || h <= 0 || h > 24 {
		return 0, fmt.Errorf("invalid day length %q: expected hours between 0 and 24", arg)
	}
	return int(h * 60), nil
}

// asCommand drops the concrete type from a command constructor's result,
// so a failed constructor never yields a non-nil interface.
func asCommand[C history.Command](c C, err error) (history.Command, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
