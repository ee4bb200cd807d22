package cron

import (
	"errors"
	"strings"
	"testing"
	"time"

	robfig "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/comb/parse"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStepRange(t *testing.T) {
	spec, err := Parse("0-59/30 * * * *")
	require.NoError(t, err)
	assert.True(t, spec.Matches(at("2024-05-01 10:30")))
	assert.True(t, spec.Matches(at("2024-05-01 10:00")))
	assert.False(t, spec.Matches(at("2024-05-01 10:31")))
}

func TestNextMatchesRobfig(t *testing.T) {
	exprs := []string{
		"* * * * *",
		"*/15 * * * *",
		"1/7 * * * *",
		"0 9-17 * * MON-FRI",
		"30 2 1,15 * *",
		"0 0 13 * FRI",
		"5 4 * * sun",
		"0 12 * JAN,jul *",
		"15 */6 1-7 * 1",
		"0 0 */10 * *",
		"0 0 29 2 *",
		"0 0 1 1 *",
		"*/1 0 1 * 3",
		"20-40/5 1,3,5 * 2-11/3 *",
		"@daily",
		"@hourly",
		"@weekly",
		"@monthly",
	}
	start := at("2024-03-01 13:17")
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			ours, err := Parse(expr)
			require.NoError(t, err)
			theirs, err := robfig.ParseStandard(expr)
			require.NoError(t, err)

			cur := start
			for i := 0; i < 25; i++ {
				want := theirs.Next(cur)
				got, ok := ours.Next(cur)
				if want.IsZero() {
					assert.False(t, ok, "Next(%v) = %v, want no match", cur, got)
					return
				}
				require.True(t, ok, "Next(%v) found nothing, want %v", cur, want)
				if !got.Equal(want) {
					t.Fatalf("Next(%v) = %v, want %v", cur, got, want)
				}
				assert.True(t, ours.Matches(got))
				cur = got
			}
		})
	}
}

func TestLastDayAndSunday(t *testing.T) {
	got, ok := MustParse("0 0 L * *").Next(at("2024-02-10 00:00"))
	require.True(t, ok)
	assert.Equal(t, at("2024-02-29 00:00"), got)

	got, ok = MustParse("0 0 * * 7").Next(at("2024-01-03 12:00"))
	require.True(t, ok)
	assert.Equal(t, time.Sunday, got.Weekday())
	assert.Equal(t, at("2024-01-07 00:00"), got)

	_, ok = MustParse("0 0 30 2 *").Next(at("2024-01-01 00:00"))
	assert.False(t, ok)
}

func TestIterator(t *testing.T) {
	spec := MustParse("0 * * * *")
	iv := Interval{From: at("2024-01-01 10:00"), To: at("2024-01-01 13:00")}

	var got []time.Time
	it := spec.Iterate(iv)
	for {
		next, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, next)
	}
	want := []time.Time{at("2024-01-01 10:00"), at("2024-01-01 11:00"), at("2024-01-01 12:00")}
	assert.Equal(t, want, got)

	var all []time.Time
	for tm := range spec.All(iv) {
		all = append(all, tm)
	}
	assert.Equal(t, want, all)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		expr string
		kind parse.Kind
	}{
		{"60 * * * *", parse.KindConversion},
		{"5-1 * * * *", parse.KindConversion},
		{"* * 0 * *", parse.KindConversion},
		{"* * L/2 * *", parse.KindConversion},
		{"* * * FOO *", parse.KindConversion},
		{"*/0 * * * *", parse.KindConversion},
		{"* * * *", parse.KindIncomplete},
		{"* * * * * *", parse.KindMismatch},
		{"@sometimes", parse.KindConversion},
		{"", parse.KindIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Parse(tt.expr)
			require.Error(t, err)
			var perr *parse.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Root().Kind, "root error: %v", perr.Root())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "*/15 9-17 L 1,3 1-5", MustParse("*/15 9-17 L JAN,3 mon-fri").String())
	assert.Equal(t, "0 0 * * *", MustParse("  @daily ").String())
}

func TestGrammarVerifies(t *testing.T) {
	g, err := ebnf.Parse("cron.ebnf", strings.NewReader(Grammar))
	require.NoError(t, err)
	require.NoError(t, ebnf.Verify(g, "Cron"))
}

func TestParseTab(t *testing.T) {
	src := "# nightly jobs\n\n0 3 * * * /usr/bin/backup --full  \n  @hourly   rotate logs\n*/5 9-17 * * MON-FRI check # not a comment\n"
	entries, err := ParseTab([]byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "/usr/bin/backup --full", entries[0].Command)
	assert.Equal(t, 16, entries[0].Offset)
	assert.True(t, entries[0].Spec.Matches(at("2024-05-01 03:00")))

	assert.Equal(t, "rotate logs", entries[1].Command)
	assert.True(t, entries[1].Spec.Matches(at("2024-05-01 07:00")))
	assert.False(t, entries[1].Spec.Matches(at("2024-05-01 07:01")))

	assert.Equal(t, "check # not a comment", entries[2].Command)

	empty, err := ParseTab([]byte("# only comments\n"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseTabErrors(t *testing.T) {
	src := []byte("0 3 * * * ok\n61 * * * * bad\n")
	_, err := ParseTab(src)
	require.Error(t, err)
	var perr *parse.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, parse.Locate(src, perr.Root().Offset).Line)

	_, err = ParseTab([]byte("* * * * *\n"))
	assert.Error(t, err)
}
