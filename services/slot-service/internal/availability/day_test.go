package availability

import (
	"errors"
	"testing"
)

func TestISODayResolver(t *testing.T) {
	cases := map[string]bool{
		"2026-02-01": false, // Sunday
		"2026-02-02": false,
		"2026-02-06": true,
		"2024-02-29": false, // Thursday, leap day
		"2024-03-01": true,
	}
	var r ISODayResolver
	for day, want := range cases {
		got, err := r.IsFriday(day)
		if err != nil {
			t.Fatalf("IsFriday(%s) failed: %v", day, err)
		}
		if got != want {
			t.Fatalf("IsFriday(%s): expected %v, got %v", day, want, got)
		}
	}
}

func TestISODayResolver_Invalid(t *testing.T) {
	for _, day := range []string{"", "2026-02-30", "2026/02/06", "friday"} {
		_, err := ISODayResolver{}.IsFriday(day)
		var de *DayError
		if !errors.As(err, &de) {
			t.Fatalf("IsFriday(%q): expected DayError, got %v", day, err)
		}
		if !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("IsFriday(%q): expected ErrInvalidDay, got %v", day, err)
		}
	}
}

func TestFixedDay(t *testing.T) {
	slots, err := SuggestSlots(nil, 30, "anything", FixedDay(true))
	if err != nil {
		t.Fatalf("SuggestSlots failed: %v", err)
	}
	for _, s := range slots {
		if MustParseClock(s) >= At(15, 0) {
			t.Fatalf("expected Friday cutoff, got %s", s)
		}
	}
}
