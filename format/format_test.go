package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/comb/grammar/cron"
	"github.com/dhamidi/comb/grammar/json"
)

func TestJSONEncoder(t *testing.T) {
	doc, err := json.Parse([]byte(`{"b": [1, 2.5, null], "a": "x"}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf)
	require.NoError(t, enc.Encode(doc))
	assert.JSONEq(t, `{"b": [1, 2.5, null], "a": "x"}`, buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	text, err := enc.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(text))
}

func TestJSONEncoderCrontab(t *testing.T) {
	entries, err := cron.ParseTab([]byte("@daily backup\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(entries))
	assert.JSONEq(t, `[{"spec": "0 0 * * *", "command": "backup", "offset": 0}]`, buf.String())
}

func TestTextEncoder(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		want string
	}{
		{"stringer", json.Array{json.Number(1), json.String("a")}, "[1,\"a\"]\n"},
		{"slice", []int{1, 2}, "1\n2\n"},
		{"empty slice", []string(nil), ""},
		{"scalar", 3.5, "3.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewTextEncoder(&buf).Encode(tt.doc))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	enc, err := New("json", &buf)
	require.NoError(t, err)
	assert.IsType(t, &JSONEncoder{}, enc)
	enc, err = New("text", &buf)
	require.NoError(t, err)
	assert.IsType(t, &TextEncoder{}, enc)
	_, err = New("yaml", &buf)
	assert.Error(t, err)
}

func TestDiagnostic(t *testing.T) {
	src := []byte("[1,\n 2,, 3]")
	_, err := json.Parse(src)
	require.Error(t, err)

	var plain bytes.Buffer
	require.NoError(t, Diagnostic(&plain, "in.json", src, err, false))
	lines := strings.Split(strings.TrimSuffix(plain.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "in.json:2:"), lines[0])
	assert.Equal(t, "     2,, 3]", lines[1])
	assert.Contains(t, lines[2], "^")

	var colored bytes.Buffer
	require.NoError(t, Diagnostic(&colored, "in.json", src, err, true))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "error:")

	var other bytes.Buffer
	require.NoError(t, Diagnostic(&other, "x", src, errors.New("boom"), false))
	assert.Equal(t, "x: boom\n", other.String())
}
