// Package daterange validates user-supplied dates and expands year-month
// ranges into the month-end record dates the FiscalData API publishes.
package daterange

import (
	"fmt"
	"sort"
	"time"
)

// MaxLookupDates caps how many explicit dates a single lookup may request.
const MaxLookupDates = 5

const (
	isoDateLayout = "2006-01-02"
	monthLayout   = "2006-01"
)

// Month is a calendar year-month pair.
type Month struct {
	Year  int
	Month time.Month
}

// Bound is the inclusive window of months the API is known to carry data for.
type Bound struct {
	From Month
	To   Month
}

// ErrInvalidDate is returned for a date not in YYYY-MM-DD form.
type ErrInvalidDate struct {
	Value string
}

func (e *ErrInvalidDate) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Value)
}

// ErrTooManyDates is returned when a lookup requests more dates than allowed.
type ErrTooManyDates struct {
	Count int
}

func (e *ErrTooManyDates) Error() string {
	return fmt.Sprintf("got %d dates, maximum is %d", e.Count, MaxLookupDates)
}

// ErrInvalidRange is returned for a malformed or reversed year-month range.
type ErrInvalidRange struct {
	Start  string
	End    string
	Reason string
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid range %s..%s: %s", e.Start, e.End, e.Reason)
}

// ErrEmptyRange is returned when clamping leaves no months to query.
type ErrEmptyRange struct {
	Bound Bound
}

func (e *ErrEmptyRange) Error() string {
	return fmt.Sprintf("no months left after clamping to available data (%s to %s)",
		e.Bound.From, e.Bound.To)
}

// String renders a Month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is chronologically before other.
func (m Month) Before(other Month) bool {
	return m.Year < other.Year || (m.Year == other.Year && m.Month < other.Month)
}

// After reports whether m is chronologically after other.
func (m Month) After(other Month) bool {
	return other.Before(m)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// End returns the last calendar day of the month in YYYY-MM-DD form.
// time.Date normalizes day 0 of the next month, so leap years and variable
// month lengths come out right.
func (m Month) End() string {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Format(isoDateLayout)
}

// Contains reports whether month falls inside the bound, inclusive.
func (b Bound) Contains(m Month) bool {
	return !m.Before(b.From) && !m.After(b.To)
}

// ParseMonth parses a strict YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, err
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// ParseBound builds a Bound from two YYYY-MM strings.
func ParseBound(from, to string) (Bound, error) {
	f, err := ParseMonth(from)
	if err != nil {
		return Bound{}, fmt.Errorf("bad bound start %q: %w", from, err)
	}
	t, err := ParseMonth(to)
	if err != nil {
		return Bound{}, fmt.Errorf("bad bound end %q: %w", to, err)
	}
	if t.Before(f) {
		return Bound{}, fmt.Errorf("bound start %s is after end %s", from, to)
	}
	return Bound{From: f, To: t}, nil
}

// Enumerate expands an inclusive YYYY-MM range into month-end dates, in
// chronological order. Months outside the bound are dropped and reported in
// skipped so the caller can warn about them; if nothing survives the clamp
// the call fails with ErrEmptyRange.
func Enumerate(start, end string, bound Bound) (dates, skipped []string, err error) {
	from, perr := ParseMonth(start)
	if perr != nil {
		return nil, nil, &ErrInvalidRange{Start: start, End: end, Reason: "start is not a valid YYYY-MM"}
	}
	to, perr := ParseMonth(end)
	if perr != nil {
		return nil, nil, &ErrInvalidRange{Start: start, End: end, Reason: "end is not a valid YYYY-MM"}
	}
	if from.After(to) {
		return nil, nil, &ErrInvalidRange{Start: start, End: end, Reason: "start is after end"}
	}

	for m := from; !m.After(to); m = m.Next() {
		if bound.Contains(m) {
			dates = append(dates, m.End())
		} else {
			skipped = append(skipped, m.String())
		}
	}
	if len(dates) == 0 {
		return nil, skipped, &ErrEmptyRange{Bound: bound}
	}
	return dates, skipped, nil
}

// ValidateDates checks a list of explicit YYYY-MM-DD dates for a lookup:
// at most MaxLookupDates entries, each well-formed. Duplicates are dropped
// and the result is returned sorted ascending.
func ValidateDates(dates []string) ([]string, error) {
	if len(dates) > MaxLookupDates {
		return nil, &ErrTooManyDates{Count: len(dates)}
	}
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, err := time.Parse(isoDateLayout, d); err != nil {
			return nil, &ErrInvalidDate{Value: d}
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}
