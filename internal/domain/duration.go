package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// FormatClock renders a duration as "H:MM:SS". Hours are not zero-padded and
// may exceed 23. Negative durations are clamped to zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// HoursToDuration converts decimal hours (2.25) to a duration rounded to the
// nearest second (2h15m).
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}

// ParseClock parses a "H:MM:SS" or "H:MM" duration. Hours are unbounded.
func ParseClock(s string) (time.Duration, error) {
	return parseHMS(s, -1)
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" as an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	return parseHMS(s, 23)
}

// FormatTimeOfDay renders an offset from midnight as "HH:MM:SS".
func FormatTimeOfDay(d time.Duration) string {
	d = ((d % day) + day) % day
	return fmt.Sprintf("%02d:%s", d/time.Hour, FormatClock(d % time.Hour)[2:])
}

// NormalizeTimeOfDay canonicalizes "9:05" to "09:05:00".
func NormalizeTimeOfDay(s string) (string, error) {
	d, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return FormatTimeOfDay(d), nil
}

// Span returns end - start. When end is before start the range is taken to
// cross midnight and rolls over to the next day.
func Span(start, end time.Duration) time.Duration {
	if end < start {
		return end + day - start
	}
	return end - start
}

func parseHMS(s string, maxHours int) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: want H:MM or H:MM:SS", s)
	}

	vals := make([]int, 3)
	for i, p := range parts {
		if p == "" {
			return 0, fmt.Errorf("invalid time %q: empty component", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time %q: bad component %q", s, p)
		}
		if i > 0 && (len(p) != 2 || n > 59) {
			return 0, fmt.Errorf("invalid time %q: minutes and seconds must be 00-59", s)
		}
		vals[i] = n
	}
	if maxHours >= 0 && vals[0] > maxHours {
		return 0, fmt.Errorf("invalid time %q: hour out of range", s)
	}

	return time.Duration(vals[0])*time.Hour +
		time.Duration(vals[1])*time.Minute +
		time.Duration(vals[2])*time.Second, nil
}
