package availability

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrInvalidClock is wrapped by every ParseError.
var ErrInvalidClock = errors.New("invalid HH:MM time")

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseError reports a time string that is not two colon-separated integers.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse clock %q: %v", e.Value, ErrInvalidClock)
	}
	return fmt.Sprintf("parse clock %q: %v: %v", e.Value, ErrInvalidClock, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidClock}
	}
	return []error{ErrInvalidClock, e.Err}
}

// ParseClock parses "HH:MM". Hour and minute ranges are not checked; "25:90" yields 25*60+90.
// Values beyond the int range saturate at the nearest bound.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &ParseError{Value: s}
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, &ParseError{Value: s, Err: err}
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, &ParseError{Value: s, Err: err}
	}
	return minutes(h, m), nil
}

var (
	maxClock = big.NewInt(math.MaxInt)
	minClock = big.NewInt(math.MinInt)
)

// minutes computes h*60+m exactly and clamps it to the Clock range.
func minutes(h, m int) Clock {
	v := new(big.Int).Mul(big.NewInt(int64(h)), big.NewInt(60))
	v.Add(v, big.NewInt(int64(m)))
	switch {
	case v.Cmp(maxClock) > 0:
		return Clock(math.MaxInt)
	case v.Cmp(minClock) < 0:
		return Clock(math.MinInt)
	}
	return Clock(v.Int64())
}

// MustParseClock is ParseClock for constants; it panics on malformed input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// At builds a Clock from an hour and minute.
func At(hour, minute int) Clock {
	return minutes(hour, minute)
}

// Add saturates instead of wrapping.
func (c Clock) Add(n int) Clock {
	switch {
	case n > 0 && c > Clock(math.MaxInt-n):
		return Clock(math.MaxInt)
	case n < 0 && c < Clock(math.MinInt-n):
		return Clock(math.MinInt)
	}
	return c + Clock(n)
}

// String renders zero-padded "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

type Interval struct {
	Start Clock
	End   Clock
}

// Overlaps reports whether [i.Start,i.End) and [start,end) intersect.
func (i Interval) Overlaps(start, end Clock) bool {
	return start < i.End && end > i.Start
}
