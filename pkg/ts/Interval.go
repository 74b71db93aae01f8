// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultInterval is used when an interval cannot be parsed.
const DefaultInterval = 5 * time.Minute

// maxIntervalDays leaves room for up to a day of hours, minutes, and seconds
// without overflowing time.Duration.
const maxIntervalDays = int(math.MaxInt64/int64(24*time.Hour)) - 1

// ParseInterval parses a positive interval written either as a Go duration ("90s", "5m")
// or as a clock span ("00:05:00", "1.02:00:00" with a leading day count).
func ParseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("interval is empty")
	}

	var d time.Duration
	if strings.Contains(s, ":") {
		span, err := parseClockSpan(s)
		if err != nil {
			return 0, err
		}
		d = span
	} else {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("error parsing interval %q: %w", s, err)
		}
		d = parsed
	}

	if d <= 0 {
		return 0, fmt.Errorf("interval %q must be greater than zero", s)
	}
	return d, nil
}

func parseClockSpan(s string) (time.Duration, error) {
	days := 0
	clock := s
	if i := strings.Index(s, "."); i != -1 && i < strings.Index(s, ":") {
		n, err := strconv.Atoi(s[:i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid day count in interval %q", s)
		}
		if n > maxIntervalDays {
			return 0, fmt.Errorf("day count in interval %q exceeds the maximum of %d days", s, maxIntervalDays)
		}
		days = n
		clock = s[i+1:]
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock span %q, expecting hh:mm or hh:mm:ss", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hours in interval %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minutes in interval %q", s)
	}
	seconds := 0.0
	if len(parts) == 3 {
		seconds, err = strconv.ParseFloat(parts[2], 64)
		if err != nil || seconds < 0 || seconds >= 60 {
			return 0, fmt.Errorf("invalid seconds in interval %q", s)
		}
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return d, nil
}
