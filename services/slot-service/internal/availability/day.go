package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDay = errors.New("invalid day")

const DayLayout = "2006-01-02"

type DayError struct {
	Day string
	Err error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("resolve day %q: %v", e.Day, e.Err)
}

func (e *DayError) Unwrap() []error {
	return []error{ErrInvalidDay, e.Err}
}

// DayResolver decides whether a day identifier falls on a Friday.
type DayResolver interface {
	IsFriday(day string) (bool, error)
}

// ISODayResolver reads days as YYYY-MM-DD on the proleptic Gregorian calendar.
type ISODayResolver struct{}

func (ISODayResolver) IsFriday(day string) (bool, error) {
	d, err := time.Parse(DayLayout, strings.TrimSpace(day))
	if err != nil {
		return false, &DayError{Day: day, Err: err}
	}
	return d.Weekday() == time.Friday, nil
}

// FixedDay is a DayResolver that ignores its input.
type FixedDay bool

func (f FixedDay) IsFriday(string) (bool, error) {
	return bool(f), nil
}
