// Package cron parses and evaluates five-field cron expressions:
//
//	minute hour day-of-month month day-of-week
//
// Each field is a comma separated list of '*', a value, a range 'a-b' or a
// step ('*/n', 'a/n', 'a-b/n'). Months and weekdays accept three letter
// names, weekday 7 is Sunday and day-of-month accepts 'L' for the last day
// of the month. The descriptors @yearly, @annually, @monthly, @weekly,
// @daily, @midnight and @hourly are shorthands for the usual expressions.
package cron

import (
	"iter"
	"strconv"
	"strings"
	"time"
)

// Expr is one element of a field.
type Expr interface {
	// Matches reports whether v is selected. last is the largest value the
	// field can take in context, such as the number of days in the month.
	Matches(v, last int) bool
	String() string
}

// Any is '*'.
type Any struct{}

// Value is a single number.
type Value int

// Last is 'L', the last day of the month.
type Last struct{}

// Range is 'From-To', inclusive.
type Range struct{ From, To int }

// Step selects every Every-th value of Base, which is Any, a Value
// (meaning Value to the end of the field) or a Range.
type Step struct {
	Base  Expr
	Every int
	// Min is the first value of the field, where a '*' base starts.
	Min int
}

// List is a comma separated field.
type List []Expr

func (Any) Matches(int, int) bool { return true }

func (Any) String() string { return "*" }

func (v Value) Matches(x, _ int) bool { return int(v) == x }

func (v Value) String() string { return strconv.Itoa(int(v)) }

func (Last) Matches(x, last int) bool { return x == last }

func (Last) String() string { return "L" }

func (r Range) Matches(x, _ int) bool { return x >= r.From && x <= r.To }

func (r Range) String() string { return strconv.Itoa(r.From) + "-" + strconv.Itoa(r.To) }

func (s Step) Matches(x, last int) bool {
	start, end := s.Min, last
	switch b := s.Base.(type) {
	case Value:
		start = int(b)
	case Range:
		start, end = b.From, b.To
	}
	return x >= start && x <= end && (x-start)%s.Every == 0
}

func (s Step) String() string { return s.Base.String() + "/" + strconv.Itoa(s.Every) }

func (l List) Matches(x, last int) bool {
	for _, e := range l {
		if e.Matches(x, last) {
			return true
		}
	}
	return false
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

// unrestricted reports whether e selects the whole field, which decides how
// the two day fields combine.
func unrestricted(e Expr) bool {
	switch e := e.(type) {
	case Any:
		return true
	case Step:
		_, star := e.Base.(Any)
		return star && e.Every == 1
	case List:
		for _, x := range e {
			if unrestricted(x) {
				return true
			}
		}
	}
	return false
}

// Spec is a parsed cron expression.
type Spec struct {
	Minute     Expr
	Hour       Expr
	DayOfMonth Expr
	Month      Expr
	DayOfWeek  Expr
}

func (s Spec) String() string {
	return strings.Join([]string{
		s.Minute.String(), s.Hour.String(), s.DayOfMonth.String(), s.Month.String(), s.DayOfWeek.String(),
	}, " ")
}

// MarshalText renders the five fields, so specs encode as strings.
func (s Spec) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (s Spec) dayMatches(t time.Time) bool {
	dom := s.DayOfMonth.Matches(t.Day(), daysIn(t.Month(), t.Year()))
	wd := int(t.Weekday())
	dow := s.DayOfWeek.Matches(wd, 6) || (wd == 0 && s.DayOfWeek.Matches(7, 6))
	if unrestricted(s.DayOfMonth) || unrestricted(s.DayOfWeek) {
		return dom && dow
	}
	return dom || dow
}

// Matches reports whether the minute containing t is selected. When both
// day fields are restricted a day matches if either field does.
func (s Spec) Matches(t time.Time) bool {
	return s.Minute.Matches(t.Minute(), 59) &&
		s.Hour.Matches(t.Hour(), 23) &&
		s.Month.Matches(int(t.Month()), 12) &&
		s.dayMatches(t)
}

// searchLimit bounds Next for expressions that never fire, such as
// February 30th.
const searchLimit = 5 * 366 * 24 * time.Hour

// Next returns the first selected minute strictly after after, in after's
// location. It returns false if nothing matches within five years.
func (s Spec) Next(after time.Time) (time.Time, bool) {
	loc := after.Location()
	t := after.Truncate(time.Minute).Add(time.Minute)
	limit := t.Add(searchLimit)
	for t.Before(limit) {
		switch {
		case !s.Month.Matches(int(t.Month()), 12):
			t = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc)
		case !s.dayMatches(t):
			t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
		case !s.Hour.Matches(t.Hour(), 23):
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, loc)
		case !s.Minute.Matches(t.Minute(), 59):
			t = t.Add(time.Minute)
		default:
			return t, true
		}
	}
	return time.Time{}, false
}

// Interval is the half-open time range [From, To).
type Interval struct {
	From, To time.Time
}

// Iterator walks the times a Spec selects within an Interval.
type Iterator struct {
	spec Spec
	iv   Interval
	cur  time.Time
}

// Iterate starts an iterator over the selected times in iv. From itself is
// included when it is selected.
func (s Spec) Iterate(iv Interval) *Iterator {
	return &Iterator{spec: s, iv: iv, cur: iv.From.Truncate(time.Minute).Add(-time.Minute)}
}

// Next returns the next selected time, or false once the interval is
// exhausted.
func (it *Iterator) Next() (time.Time, bool) {
	t, ok := it.spec.Next(it.cur)
	if !ok || !t.Before(it.iv.To) {
		return time.Time{}, false
	}
	if t.Before(it.iv.From) {
		it.cur = t
		return it.Next()
	}
	it.cur = t
	return t, true
}

// All yields the selected times in iv.
func (s Spec) All(iv Interval) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		it := s.Iterate(iv)
		for {
			t, ok := it.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}
