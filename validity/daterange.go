package validity

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time of day. It is kept as midnight UTC so
// that dates compare and subtract without timezone drift. The zero Date
// stands for an unknown date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// DateOfPtr is DateOf for nullable columns.
func DateOfPtr(t *time.Time) Date {
	if t == nil {
		return Date{}
	}
	return DateOf(*t)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Time() time.Time        { return d.t }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

// AddYears adds calendar years. Feb 29 moves to Feb 28 when the target year
// is not a leap year, the same as date + interval 'n years' in PostgreSQL.
// time.AddDate would roll it over to Mar 1 instead.
func (d Date) AddYears(n int) Date {
	y, m, day := d.t.Date()
	y += n
	if m == time.February && day == 29 && !isLeapYear(y) {
		day = 28
	}
	return NewDate(y, m, day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// minDate returns the earliest known date, ignoring unknown ones.
func minDate(dates ...Date) Date {
	var m Date
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if m.IsZero() || d.Before(m) {
			m = d
		}
	}
	return m
}

// maxDate returns the latest known date, ignoring unknown ones.
func maxDate(dates ...Date) Date {
	var m Date
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if m.IsZero() || d.After(m) {
			m = d
		}
	}
	return m
}

// coalesce returns the first date that is not unknown.
func coalesce(dates ...Date) Date {
	for _, d := range dates {
		if !d.IsZero() {
			return d
		}
	}
	return Date{}
}

// DateRange is the half-open interval [Start, End).
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func NewDateRange(start, end Date) DateRange {
	return DateRange{Start: start, End: end}
}

// Empty reports whether the range holds no day at all.
func (r DateRange) Empty() bool {
	return r.Start.IsZero() || r.End.IsZero() || !r.Start.Before(r.End)
}

// StrictlyLeftOf is the << operator: every day of r precedes every day of other.
func (r DateRange) StrictlyLeftOf(other DateRange) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return !other.Start.Before(r.End)
}

// StrictlyRightOf is the >> operator.
func (r DateRange) StrictlyRightOf(other DateRange) bool {
	return other.StrictlyLeftOf(r)
}

// Overlaps is the && operator: both ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Adjacent reports whether one range ends exactly where the other starts.
func (r DateRange) Adjacent(other DateRange) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.End.Equal(other.Start) || other.End.Equal(r.Start)
}

func (r DateRange) Contains(d Date) bool {
	if r.Empty() || d.IsZero() {
		return false
	}
	return !d.Before(r.Start) && d.Before(r.End)
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + "," + r.End.String() + ")"
}
