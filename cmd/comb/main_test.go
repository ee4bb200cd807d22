package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/comb/grammar/cron"
	"github.com/dhamidi/comb/workspace"
)

func TestNextTimes(t *testing.T) {
	spec := cron.MustParse("*/30 9 * * *")
	start, err := parseTime("2024-05-01 09:10")
	require.NoError(t, err)

	got := nextTimes(spec, start, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-05-01 09:30", got[0].Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-05-02 09:00", got[1].Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-05-02 09:30", got[2].Format("2006-01-02 15:04"))

	assert.Empty(t, nextTimes(cron.MustParse("0 0 30 2 *"), start, 3))
}

func TestParseTime(t *testing.T) {
	for _, s := range []string{"2024-05-01T09:10:00Z", "2024-05-01 09:10", "2024-05-01"} {
		_, err := parseTime(s)
		assert.NoError(t, err, s)
	}
	_, err := parseTime("tomorrow")
	assert.Error(t, err)

	now, err := parseTime("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestExtensionOptions(t *testing.T) {
	opts, err := extensionOptions([]string{"hocon=cfg", "json=.jsonc"})
	require.NoError(t, err)
	ws := workspace.New(t.TempDir(), opts...)
	assert.Equal(t, "hocon", ws.LanguageFor("a.cfg").Name)
	assert.Equal(t, "json", ws.LanguageFor("a.jsonc").Name)

	for _, bad := range []string{"cfg", "nope=x", "json="} {
		_, err := extensionOptions([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestBench(t *testing.T) {
	data := []byte(`{"a": [1, 2, {"b": null}], "c": "d"}`)
	var results []benchResult
	for _, d := range jsonDecoders() {
		r := measure(d, data, 3)
		require.NoError(t, r.err, d.name)
		results = append(results, r)
	}
	results = append(results, measure(decoder{"broken", func([]byte) error { return errors.New("boom") }}, data, 3))

	var out bytes.Buffer
	require.NoError(t, printBench(&out, len(data), 3, results))
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "input 36 B, 3 iterations"), text)
	assert.Contains(t, text, "comb static")
	assert.Contains(t, text, "broken")
	assert.Contains(t, text, "boom")
}

func TestReportChange(t *testing.T) {
	ws := workspace.New(t.TempDir())
	doc, err := ws.UpdateFile("a.calc", []byte("print 1 / 0;"))
	require.NoError(t, err)

	var out bytes.Buffer
	reportChange(&out, "a.calc", doc)
	assert.Equal(t, "a.calc:1:9: error: division by zero\n", out.String())

	out.Reset()
	reportChange(&out, "gone.json", nil)
	assert.Equal(t, "removed gone.json\n", out.String())
}
