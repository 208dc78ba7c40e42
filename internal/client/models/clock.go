package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClockLayout is the on-the-wire form of time_in and time_out: zero-padded
// 12-hour clock, a single space, upper-case meridiem ("09:00 AM").
const ClockLayout = "03:04 PM"

var ErrInvalidClock = errors.New("invalid clock time")

var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

// NormalizeClock converts user input such as "9:00am", "09:00 AM" or "21:00"
// into ClockLayout. Empty input stays empty.
func NormalizeClock(s string) (string, error) {
	v := strings.Join(strings.Fields(s), " ")
	if v == "" {
		return "", nil
	}
	v = strings.ToUpper(strings.ReplaceAll(v, ".", ""))

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

// JoinClock reassembles a clock split into its numeric part and meridiem,
// e.g. ("9:30", "pm") -> "09:30 PM".
func JoinClock(clock, meridiem string) (string, error) {
	return NormalizeClock(strings.TrimSpace(clock) + " " + strings.TrimSpace(meridiem))
}

// ToEditRequest builds the recalculation payload. Labels are sent as-is and
// clock fields are normalized; the first unparseable value aborts the build.
func ToEditRequest(days []Day) ([]EditRequestDay, error) {
	out := make([]EditRequestDay, 0, len(days))
	for i, d := range days {
		in, err := NormalizeClock(d.TimeIn)
		if err != nil {
			return nil, fmt.Errorf("day %d time_in: %w", i+1, err)
		}
		outT, err := NormalizeClock(d.TimeOut)
		if err != nil {
			return nil, fmt.Errorf("day %d time_out: %w", i+1, err)
		}
		out = append(out, EditRequestDay{Day: d.Day, TimeIn: in, TimeOut: outT})
	}
	return out, nil
}
