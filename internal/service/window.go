package service

import (
	"time"

	"github.com/gdg-garage/conference-api/internal/models"
	"gorm.io/datatypes"
)

// Window is an inclusive range of days. A nil Start is open towards the
// past, a nil End open towards the future.
type Window struct {
	Start *time.Time
	End   *time.Time
}

func WindowFromDates(start, end *datatypes.Date) Window {
	var w Window
	if start != nil {
		s := time.Time(*start)
		w.Start = &s
	}
	if end != nil {
		e := time.Time(*end)
		w.End = &e
	}
	return w
}

// Overlaps reports whether the windows share at least one day:
// s1 <= e2 && s2 <= e1, with open bounds always satisfying their side.
func (w Window) Overlaps(o Window) bool {
	return notAfter(w.Start, o.End) && notAfter(o.Start, w.End)
}

// Valid reports whether End is not before Start.
func (w Window) Valid() bool {
	return notAfter(w.Start, w.End)
}

func notAfter(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !start.After(*end)
}

// Overlapping returns the reservations in existing whose window overlaps w.
func Overlapping(existing []models.Reservation, w Window) []models.Reservation {
	var out []models.Reservation
	for _, r := range existing {
		if WindowFromDates(r.StartDate, r.EndDate).Overlaps(w) {
			out = append(out, r)
		}
	}
	return out
}
