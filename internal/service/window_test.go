package service

import (
	"fmt"
	"testing"
	"time"
)

func day(n int) *time.Time {
	t := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return &t
}

// sharesDay is the reference definition: two windows overlap when some day
// in the probed range lies in both. Open bounds extend past the probe range.
func sharesDay(a, b Window) bool {
	contains := func(w Window, d time.Time) bool {
		return (w.Start == nil || !d.Before(*w.Start)) && (w.End == nil || !d.After(*w.End))
	}
	for i := -2; i <= 8; i++ {
		d := *day(i)
		if contains(a, d) && contains(b, d) {
			return true
		}
	}
	return false
}

func TestWindowOverlapsMatchesSharedDays(t *testing.T) {
	bounds := []*time.Time{nil, day(0), day(1), day(2), day(3), day(4), day(5)}
	var windows []Window
	for _, s := range bounds {
		for _, e := range bounds {
			w := Window{Start: s, End: e}
			if w.Valid() {
				windows = append(windows, w)
			}
		}
	}

	for _, a := range windows {
		for _, b := range windows {
			want := sharesDay(a, b)
			if got := a.Overlaps(b); got != want {
				t.Fatalf("%s overlaps %s = %v, want %v", fmtWindow(a), fmtWindow(b), got, want)
			}
			if a.Overlaps(b) != b.Overlaps(a) {
				t.Fatalf("overlap must be symmetric for %s and %s", fmtWindow(a), fmtWindow(b))
			}
		}
	}
}

func TestWindowInclusiveBounds(t *testing.T) {
	a := Window{Start: day(0), End: day(4)}
	if !a.Overlaps(Window{Start: day(4), End: day(6)}) {
		t.Error("windows touching on the same day must overlap")
	}
	if a.Overlaps(Window{Start: day(5), End: day(6)}) {
		t.Error("adjacent windows must not overlap")
	}
	if !a.Overlaps(Window{Start: day(1), End: day(1)}) {
		t.Error("single-day window inside must overlap")
	}
	if (Window{Start: day(3), End: day(2)}).Valid() {
		t.Error("end before start must be invalid")
	}
}

func fmtWindow(w Window) string {
	f := func(t *time.Time) string {
		if t == nil {
			return "open"
		}
		return t.Format("01-02")
	}
	return fmt.Sprintf("[%s, %s]", f(w.Start), f(w.End))
}
