package calc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/comb/parse"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"precedence", "print 1 + 2 * 3;", []string{"7"}},
		{"left associative", "print 10 - 4 - 3; print 100 / 10 / 5;", []string{"3", "2"}},
		{"parentheses", "print (1 + 2) * 3;", []string{"9"}},
		{"unary minus", "print -3 * -(2 + 1); print --4;", []string{"9", "4"}},
		{"integer division", "print 7 / 2; print 7 % 4;", []string{"3", "3"}},
		{"floats", "print 7.0 / 2; print 1.5e1 + 1;", []string{"3.5", "16"}},
		{"variables", "let x = 4;\nlet y = x * x; # square\nprint y + x;", []string{"20"}},
		{"rebinding", "let x = 1; let x = x + 1; print x;", []string{"2"}},
		{"keyword prefix", "let letter = 2; let printer = letter; print printer;", []string{"2"}},
		{"empty", "  # nothing\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Run(tt.src)
			require.NoError(t, err)
			var got []string
			for _, v := range out {
				got = append(got, v.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTree(t *testing.T) {
	p, err := Parse("let a = 1 + 2 * b - -c; print (a);")
	require.NoError(t, err)
	assert.Equal(t, "let a = ((1 + (2 * b)) - (-c));\nprint a;", p.String())

	let := p[0].(Let)
	b := let.X.(Binary).X.(Binary).Y.(Binary).Y.(Var)
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, 16, b.Pos)
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
		pos  int
	}{
		{"print x;", ErrUndefined, 6},
		{"print 1 / 0;", ErrDivisionByZero, 8},
		{"print 1.5 % 0;", ErrDivisionByZero, 10},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Run(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "err = %v", err)
			var rerr *RuntimeError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.pos, rerr.Pos)
		})
	}
}

func TestStatementsBeforeErrorKeepEffect(t *testing.T) {
	in := NewInterpreter()
	p, err := Parse("let a = 2; print a; print a / 0; let b = 1;")
	require.NoError(t, err)
	out, err := in.Exec(p)
	require.Error(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, Int(2), out[0])
	_, ok := in.Lookup("b")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind parse.Kind
	}{
		{"print 1", parse.KindIncomplete},
		{"let = 1;", parse.KindMismatch},
		{"let let = 1;", parse.KindMismatch},
		{"print (1 + 2;", parse.KindMismatch},
		{"print 1.;", parse.KindMismatch},
		{"print 99999999999999999999;", parse.KindConversion},
		{"show 1;", parse.KindMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var perr *parse.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Root().Kind, "root error: %v", perr.Root())
		})
	}
}

func TestGrammarVerifies(t *testing.T) {
	g, err := ebnf.Parse("calc.ebnf", strings.NewReader(Grammar))
	require.NoError(t, err)
	require.NoError(t, ebnf.Verify(g, "Program"))
}
