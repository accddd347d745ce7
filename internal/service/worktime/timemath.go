package worktime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
)

// MinutesPerDay is the offset added to a check-out that falls on the next day.
const MinutesPerDay = 1440

// ParseClock converts "H:MM", "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are ignored.
func ParseClock(hhmm string) (int, error) {
	s := strings.TrimSpace(hhmm)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", attendance.ErrMalformedTime, hhmm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", attendance.ErrMalformedTime, hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", attendance.ErrMalformedTime, hhmm)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", attendance.ErrMalformedTime, hhmm)
		}
	}

	return h*60 + m, nil
}

// ToMinutes is the lenient form of ParseClock: empty or unparseable input is 0.
func ToMinutes(hhmm string) int {
	m, err := ParseClock(hhmm)
	if err != nil {
		return 0
	}
	return m
}

// SessionSpan returns the session as a half-open minute interval. A check-out
// earlier than the check-in belongs to the next day.
func SessionSpan(in, out int) (start, end int) {
	if out < in {
		return in, out + MinutesPerDay
	}
	return in, out
}

// OverlapMinutes is the length of the intersection of [aStart,aEnd) and [bStart,bEnd).
func OverlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	return max(0, min(aEnd, bEnd)-max(aStart, bStart))
}
