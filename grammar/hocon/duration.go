package hocon

import (
	"fmt"
	"strings"
	"time"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

var units = func() map[string]time.Duration {
	m := map[string]time.Duration{"": time.Millisecond}
	for d, names := range map[time.Duration]string{
		time.Nanosecond:  "ns nano nanos nanosecond nanoseconds",
		time.Microsecond: "us micro micros microsecond microseconds",
		time.Millisecond: "ms milli millis millisecond milliseconds",
		time.Second:      "s second seconds",
		time.Minute:      "m minute minutes",
		time.Hour:        "h hour hours",
		24 * time.Hour:   "d day days",
	} {
		for _, name := range strings.Fields(names) {
			m[name] = d
		}
	}
	return m
}()

var duration = func() parse.Parser[rune, parse.Pair[float64, string]] {
	blank := parse.TakeWhile0(element.IsSpace[rune])
	unit := parse.Text(parse.TakeWhile0(element.IsAlpha[rune]))
	return parse.Surround(blank, parse.And(parse.SkipRight(parse.Float[rune, float64](), blank), unit), parse.And(blank, parse.End[rune]()))
}()

// ParseDuration parses a HOCON duration such as "10s" or "1.5 hours". A
// number without a unit counts milliseconds.
func ParseDuration(s string) (time.Duration, error) {
	p, err := parse.Run(duration, []rune(s))
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	unit, ok := units[strings.ToLower(p.Second)]
	if !ok {
		return 0, fmt.Errorf("parse duration %q: unknown unit %q", s, p.Second)
	}
	return time.Duration(p.First * float64(unit)), nil
}
