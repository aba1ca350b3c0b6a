package availability

// Event is a busy period as supplied by callers, in "HH:MM" form.
type Event struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseEvents converts events to intervals, failing on the first malformed time.
func ParseEvents(events []Event) ([]Interval, error) {
	out := make([]Interval, 0, len(events))
	for _, ev := range events {
		start, err := ParseClock(ev.Start)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(ev.End)
		if err != nil {
			return nil, err
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out, nil
}

// FindSlots returns start times within the work window where a meeting of duration minutes
// overlaps neither the clipped busy intervals nor lunch. On Fridays start times are further
// limited to before FridayCutoff; the meeting itself may run past it.
//
// Nothing is validated: inverted intervals and non-positive durations flow through the overlap
// arithmetic and simply shape the (possibly empty) result.
func (c Calendar) FindSlots(busy []Interval, duration int, friday bool) []Clock {
	blocked := append(c.Clip(busy), c.lunch())

	slots := []Clock{}
	for t := c.WorkStart; t < c.WorkEnd; t = t.Add(c.step()) {
		if duration > int(c.WorkEnd-t) {
			continue
		}
		end := t.Add(duration)
		if friday && t >= c.FridayCutoff {
			continue
		}
		if !overlapsAny(t, end, blocked) {
			slots = append(slots, t)
		}
	}
	return slots
}

// SuggestSlots parses events and renders FindSlots as "HH:MM" strings.
func (c Calendar) SuggestSlots(events []Event, duration int, friday bool) ([]string, error) {
	busy, err := ParseEvents(events)
	if err != nil {
		return nil, err
	}
	slots := c.FindSlots(busy, duration, friday)
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out, nil
}

// SuggestSlots runs the default calendar for a calendar day resolved through days.
func SuggestSlots(events []Event, duration int, day string, days DayResolver) ([]string, error) {
	friday, err := days.IsFriday(day)
	if err != nil {
		return nil, err
	}
	return DefaultCalendar().SuggestSlots(events, duration, friday)
}

func overlapsAny(start, end Clock, busy []Interval) bool {
	for _, b := range busy {
		// Half-open intervals: [start,end) overlaps [b.Start,b.End) iff start < b.End && end > b.Start.
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
