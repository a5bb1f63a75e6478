package gaps

import (
	"strings"
	"time"
)

// DateLayout is the textual date format used on input and output.
const DateLayout = "2006-01-02"

// dateTimeLayouts are the date-time forms accepted before truncation.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Date is a calendar day with no time-of-day component. It is held at UTC
// midnight so equality and day arithmetic do not depend on the local zone.
type Date struct {
	t time.Time
}

// NewDate returns the calendar day y-m-d. Out of range values normalise the
// way time.Date does.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to the calendar day it falls on in its own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO date, or an ISO date-time whose date component is
// kept as written.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), true
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Next() Date { return d.AddDays(1) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) String() string { return d.t.Format(DateLayout) }

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.t.Before(o.t):
		return -1
	case d.t.After(o.t):
		return 1
	}
	return 0
}

func maxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}
