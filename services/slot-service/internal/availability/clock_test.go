package availability

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
	}{
		{"09:00", 540},
		{"9:05", 545},
		{"00:00", 0},
		{"23:59", 1439},
		{"25:90", 25*60 + 90},
		{" 9: 05", 545},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestParseClock_Malformed(t *testing.T) {
	for _, in := range []string{"", "0900", "09:00:00", "ab:cd", "09:", ":30", "9.5:00"} {
		_, err := ParseClock(in)
		if err == nil {
			t.Fatalf("ParseClock(%q): expected error", in)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Value != in {
			t.Fatalf("ParseClock(%q): expected ParseError, got %v", in, err)
		}
		if !errors.Is(err, ErrInvalidClock) {
			t.Fatalf("ParseClock(%q): expected ErrInvalidClock, got %v", in, err)
		}
	}

	_, err := ParseClock("xx:00")
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("expected wrapped strconv.ErrSyntax, got %v", err)
	}
}

func TestClockString(t *testing.T) {
	if got := At(9, 5).String(); got != "09:05" {
		t.Fatalf("expected 09:05, got %s", got)
	}
	if got := At(16, 45).String(); got != "16:45" {
		t.Fatalf("expected 16:45, got %s", got)
	}
}

func TestInterval_Overlaps(t *testing.T) {
	busy := Interval{Start: At(10, 0), End: At(11, 0)}
	if busy.Overlaps(At(9, 30), At(10, 0)) {
		t.Fatalf("expected touching interval before not to overlap")
	}
	if busy.Overlaps(At(11, 0), At(11, 30)) {
		t.Fatalf("expected touching interval after not to overlap")
	}
	if !busy.Overlaps(At(10, 45), At(11, 15)) {
		t.Fatalf("expected partial overlap")
	}
	if !busy.Overlaps(At(9, 0), At(12, 0)) {
		t.Fatalf("expected containing interval to overlap")
	}
}

func TestParseClock_Saturates(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
	}{
		{"153722867280912931:00", Clock(math.MaxInt)},
		{"-153722867280912931:00", Clock(math.MinInt)},
		{"153722867280912930:-100", Clock(153722867280912930*60 - 100)},
		{"0:9223372036854775807", Clock(math.MaxInt)},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}

	// Fields that do not fit an int at all are still malformed input.
	if _, err := ParseClock("99999999999999999999:00"); !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("expected wrapped strconv.ErrRange, got %v", err)
	}
}

func TestClockAdd_Saturates(t *testing.T) {
	if got := At(16, 45).Add(math.MaxInt); got != Clock(math.MaxInt) {
		t.Fatalf("expected MaxInt, got %d", got)
	}
	if got := Clock(-60).Add(math.MinInt); got != Clock(math.MinInt) {
		t.Fatalf("expected MinInt, got %d", got)
	}
	if got := At(9, 0).Add(math.MinInt); got != Clock(math.MinInt+540) {
		t.Fatalf("expected MinInt+540, got %d", got)
	}
	if got := At(9, 0).Add(30); got != At(9, 30) {
		t.Fatalf("expected 09:30, got %s", got)
	}
}
