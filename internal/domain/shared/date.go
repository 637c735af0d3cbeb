package shared

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted calendar date form on the API
const DateLayout = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t.UTC(), nil
}

// ParseOptionalDate parses s when non-nil and non-empty
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatOptionalDate renders t or returns nil
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// Today returns the current UTC calendar date
func Today() time.Time {
	return TruncateDate(time.Now().UTC())
}

// TruncateDate drops the clock part of t
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive calendar date interval
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two ISO dates; both are required and start must not follow end.
func NewDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, NewValidationError("start_date and end_date are required (YYYY-MM-DD)")
	}
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	if s.After(e) {
		return DateRange{}, NewValidationError("start_date must be on or before end_date")
	}
	return DateRange{Start: s, End: e}, nil
}

// NewOptionalDateRange is like NewDateRange but allows either bound to be empty.
func NewOptionalDateRange(start, end string) (*DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	r := DateRange{}
	if start != "" {
		s, err := ParseDate(start)
		if err != nil {
			return nil, err
		}
		r.Start = s
	}
	if end != "" {
		e, err := ParseDate(end)
		if err != nil {
			return nil, err
		}
		r.End = e
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
		return nil, NewValidationError("start_date must be on or before end_date")
	}
	return &r, nil
}

// Contains reports whether t falls on a day within the range
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDate(t)
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}
