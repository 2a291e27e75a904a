package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DayFormat is the canonical date key layout.
	DayFormat = "2006-01-02"

	readDayFormat = "2006-1-2" // single-digit month/day accepted on input
)

// Day is a calendar date with no time-of-day component. The zero Day is
// not a valid date.
type Day struct {
	y int
	m time.Month
	d int
}

// NewDay returns the Day for year, month and day. Out of range values are
// normalised the way time.Date normalises them.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's location, discarding the time.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{y, m, d}
}

// Today returns the current local calendar day.
func Today() Day { return DayOf(time.Now().In(time.Local)) }

// ParseDay parses a YYYY-MM-DD date. Single-digit months and days are
// accepted; impossible dates such as 2023-02-30 are rejected.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(readDayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t), nil
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d == Day{} }

// Time returns midnight UTC of d.
func (d Day) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether d is before x.
func (d Day) Before(x Day) bool {
	if d.y != x.y {
		return d.y < x.y
	}
	if d.m != x.m {
		return d.m < x.m
	}
	return d.d < x.d
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after x. It is suitable for slices.SortFunc.
func (d Day) Compare(x Day) int {
	switch {
	case d.Before(x):
		return -1
	case x.Before(d):
		return 1
	}
	return 0
}

// String returns the normalised YYYY-MM-DD key.
func (d Day) String() string { return d.Time().Format(DayFormat) }

// MarshalJSON encodes d as a YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string. Any value that is not a valid
// date decodes to the zero Day, so one bad stored entry does not make the
// whole collection unreadable.
func (d *Day) UnmarshalJSON(data []byte) error {
	*d = Day{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if v, err := ParseDay(s); err == nil {
		*d = v
	}
	return nil
}
