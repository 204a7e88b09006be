package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// TTL is a token lifetime expressed as a positive integer with a single unit
// suffix: "s" (seconds), "m" (minutes), "h" (hours) or "d" (days). The day
// unit is the reason time.ParseDuration cannot be used directly.
type TTL time.Duration

// ErrInvalidTTL is returned when a TTL string does not match the
// <number><s|m|h|d> format.
var ErrInvalidTTL = errors.New("invalid TTL: want <number><s|m|h|d>")

// ParseTTL converts a string such as "15m" or "7d" into a TTL.
func ParseTTL(s string) (TTL, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
	}

	value, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
	}

	var unit time.Duration
	switch s[len(s)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
	}

	return TTL(time.Duration(value) * unit), nil
}

// Duration returns the TTL as a time.Duration.
func (t TTL) Duration() time.Duration {
	return time.Duration(t)
}

// UnmarshalText implements encoding.TextUnmarshaler so that both
// caarlos0/env and JSON string values decode through ParseTTL.
func (t *TTL) UnmarshalText(b []byte) error {
	parsed, err := ParseTTL(string(b))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t TTL) MarshalText() ([]byte, error) {
	d := time.Duration(t)
	switch {
	case d%(24*time.Hour) == 0:
		return []byte(fmt.Sprintf("%dd", d/(24*time.Hour))), nil
	case d%time.Hour == 0:
		return []byte(fmt.Sprintf("%dh", d/time.Hour)), nil
	case d%time.Minute == 0:
		return []byte(fmt.Sprintf("%dm", d/time.Minute)), nil
	default:
		return []byte(fmt.Sprintf("%ds", d/time.Second)), nil
	}
}
