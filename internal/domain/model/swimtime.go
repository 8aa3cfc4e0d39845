package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned when a swim time cannot be parsed.
var ErrInvalidTime = errors.New("invalid swim time")

// SwimTime is a race time in seconds. Zero means no time was recorded
// (not swum, scratched or disqualified).
type SwimTime float64

// Valid reports whether the time is a genuine, positive result.
func (t SwimTime) Valid() bool { return t > 0 }

// Seconds returns the time as float seconds.
func (t SwimTime) Seconds() float64 { return float64(t) }

// String formats the time as plain seconds, e.g. "55.23".
func (t SwimTime) String() string {
	return strconv.FormatFloat(float64(t), 'f', -1, 64)
}

// Clock formats the time as m:ss.hh, omitting minutes under one minute.
func (t SwimTime) Clock() string {
	if !t.Valid() {
		return "NT"
	}
	hundredths := int64(float64(t)*100 + 0.5)
	minutes := hundredths / 6000
	rest := hundredths % 6000
	if minutes == 0 {
		return fmt.Sprintf("%d.%02d", rest/100, rest%100)
	}
	return fmt.Sprintf("%d:%02d.%02d", minutes, rest/100, rest%100)
}

// ParseSwimTime parses "55.23", "1:02.34" or "1:02:03.45". Empty strings and the
// usual no-time markers (NT, NS, DQ, SCR, DNF) yield a zero time.
func ParseSwimTime(s string) (SwimTime, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "NT", "NS", "DQ", "SCR", "DNF", "DFS":
		return 0, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	var total float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (i > 0 && v >= 60) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		total = total*60 + v
	}
	return SwimTime(total), nil
}
