// Package forms converts between the wire shapes of the API and the stored
// entities. Every entity/shape pair has one static field table; each row
// names the wire field and knows how to encode it from the entity and, for
// writable fields, decode it back.
package forms

import (
	"strings"
	"time"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// field is one row of a mapping table between entity E and wire shape F.
// decode is nil for output-only fields.
type field[E, F any] struct {
	name   string
	encode func(e *E, f *F)
	decode func(f *F, e *E, v *apperr.ValidationError)
}

func encodeAll[E, F any](table []field[E, F], e *E, f *F) {
	for _, row := range table {
		row.encode(e, f)
	}
}

func decodeAll[E, F any](table []field[E, F], f *F, e *E) *apperr.ValidationError {
	v := &apperr.ValidationError{}
	for _, row := range table {
		if row.decode != nil {
			row.decode(f, e, v)
		}
	}
	return v
}

// ParseDate reads a calendar date from the first 10 characters of an
// ISO-8601 date or date-time string. An empty string is an absent date.
func ParseDate(s string) (*datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

// FormatDate renders d as YYYY-MM-DD, or "" when absent.
func FormatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(dateLayout)
}

// MonthOf returns the month (1-12) of d, or 0 when absent.
func MonthOf(d *datatypes.Date) int {
	if d == nil {
		return 0
	}
	return int(time.Time(*d).Month())
}

func decodeDate(name string, raw string, v *apperr.ValidationError) *datatypes.Date {
	d, err := ParseDate(raw)
	if err != nil {
		v.Add(name, name+" must be a YYYY-MM-DD date")
		return nil
	}
	return d
}

func checkOrder(start, end *datatypes.Date, v *apperr.ValidationError) {
	if start != nil && end != nil && time.Time(*end).Before(time.Time(*start)) {
		v.Add("endDate", "endDate must not be before startDate")
	}
}
