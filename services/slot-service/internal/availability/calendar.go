package availability

import (
	"errors"
	"fmt"
)

const DefaultStepMinutes = 15

// Calendar is the fixed work-day policy slots are computed against.
// It is a value type; callers share it by copy.
type Calendar struct {
	WorkStart    Clock
	WorkEnd      Clock
	LunchStart   Clock
	LunchEnd     Clock
	StepMinutes  int
	FridayCutoff Clock // no slot may start at or after this time on Fridays
}

// DefaultCalendar is 09:00-17:00 with lunch 12:00-13:00, 15 minute steps and a 15:00 Friday cutoff.
func DefaultCalendar() Calendar {
	return Calendar{
		WorkStart:    At(9, 0),
		WorkEnd:      At(17, 0),
		LunchStart:   At(12, 0),
		LunchEnd:     At(13, 0),
		StepMinutes:  DefaultStepMinutes,
		FridayCutoff: At(15, 0),
	}
}

// Validate reports calendars that cannot produce meaningful slots.
func (c Calendar) Validate() error {
	var errs []error
	if c.WorkEnd <= c.WorkStart {
		errs = append(errs, fmt.Errorf("work end %s must be after work start %s", c.WorkEnd, c.WorkStart))
	}
	if c.LunchEnd < c.LunchStart {
		errs = append(errs, fmt.Errorf("lunch end %s must not be before lunch start %s", c.LunchEnd, c.LunchStart))
	}
	if c.StepMinutes <= 0 {
		errs = append(errs, fmt.Errorf("step must be positive (got %d)", c.StepMinutes))
	}
	if c.WorkStart < 0 || c.WorkEnd > At(24, 0) {
		errs = append(errs, fmt.Errorf("work window %s-%s must lie within one day", c.WorkStart, c.WorkEnd))
	}
	return errors.Join(errs...)
}

func (c Calendar) step() int {
	if c.StepMinutes <= 0 {
		return DefaultStepMinutes
	}
	return c.StepMinutes
}

func (c Calendar) lunch() Interval {
	return Interval{Start: c.LunchStart, End: c.LunchEnd}
}

// Clip trims busy intervals to the work window. Intervals that do not reach into the window
// (end <= work start or start >= work end) are dropped. Inverted intervals are kept as-is
// after clipping.
func (c Calendar) Clip(busy []Interval) []Interval {
	out := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if b.End <= c.WorkStart || b.Start >= c.WorkEnd {
			continue
		}
		out = append(out, Interval{
			Start: max(b.Start, c.WorkStart),
			End:   min(b.End, c.WorkEnd),
		})
	}
	return out
}
