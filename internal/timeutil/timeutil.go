// Package timeutil provides utility functions for working with
// wall-clock times and countdown durations.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesInAnHour = 60

// ClockToMinutes parses a wall-clock time in HH:MM form into minutes
// after midnight. It reports false for empty or malformed values.
func ClockToMinutes(clock string) (int, bool) {
	if clock == "" {
		return 0, false
	}

	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, false
	}

	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}

	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}

	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, false
	}

	return hours*minutesInAnHour + mins, true
}

// HourLabel returns the HH:00 label for the hour containing the
// specified minutes-of-day value.
func HourLabel(minutesOfDay int) string {
	return fmt.Sprintf("%02d:00", minutesOfDay/minutesInAnHour)
}

// SecsToMinsAndSecs splits a seconds value into whole minutes and
// leftover seconds.
func SecsToMinsAndSecs(seconds int) (mins, secs int) {
	mins = seconds / minutesInAnHour
	secs = seconds % minutesInAnHour

	return
}

// FormatSeconds renders a seconds value as MM:SS for countdown
// displays.
func FormatSeconds(seconds int) string {
	m, s := SecsToMinsAndSecs(seconds)

	return fmt.Sprintf("%02d:%02d", m, s)
}

// MinutesNow returns the minutes elapsed since midnight for the
// specified time.
func MinutesNow(t time.Time) int {
	return t.Hour()*minutesInAnHour + t.Minute()
}
