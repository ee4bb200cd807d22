package json

import (
	stdjson "encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/comb/parse"
)

var corpus = []string{
	`null`,
	`true`,
	` false `,
	`0`,
	`-0`,
	`42`,
	`-12.5e-3`,
	`1E+2`,
	`""`,
	`"hello"`,
	`"esc \" \\ \/ \b \f \n \r \t"`,
	`"é中"`,
	`"\ud83d\ude00"`,
	`"😀"`,
	`"\ud83d"`,
	`"\ud83dx"`,
	`"héllo wörld"`,
	`[]`,
	`[ ]`,
	`[1, 2, 3]`,
	`[[], [[]], {}]`,
	`{}`,
	`{"a": 1}`,
	`{"a": {"b": [true, null, "c"]}, "d": -1}`,
	`{"dup": 1, "dup": 2}`,
	"\n\t{ \"spaced\" :\r\n [ 1 , 2 ] }\n",
	// invalid
	``,
	`   `,
	`[1,]`,
	`[1 2]`,
	`{"a" 1}`,
	`{"a": 1`,
	`{"a": 1}}`,
	`{a: 1}`,
	`01`,
	`1.`,
	`-`,
	`.5`,
	`1e`,
	`1e400`,
	`"\x"`,
	`"\u12"`,
	"\"a\nb\"",
	`"open`,
	`tru`,
	`nul`,
	`[`,
	`{"a": [1, {"b": }]}`,
}

func TestParseArray(t *testing.T) {
	v, err := Parse([]byte("[1, 2, 3]"))
	require.NoError(t, err)
	want := Array{Number(1), Number(2), Number(3)}
	if diff := cmp.Diff(Value(want), v); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnterminatedObject(t *testing.T) {
	for name, run := range map[string]func([]byte) (Value, error){
		"dynamic": func(b []byte) (Value, error) { return Parse(b) },
		"static":  ParseStatic,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := run([]byte(`{"a": 1`))
			require.Error(t, err)
			var perr *parse.Error
			require.True(t, errors.As(err, &perr))
			root := perr.Root()
			assert.Equal(t, parse.KindIncomplete, root.Kind)
			assert.Equal(t, 7, root.Offset)
			assert.Contains(t, perr.Labels(), "object")
		})
	}
}

func TestErrorAfterSeparator(t *testing.T) {
	tests := []struct {
		in     string
		kind   parse.Kind
		offset int
	}{
		{"[1, ", parse.KindIncomplete, 4},
		{"[1, x]", parse.KindMismatch, 4},
		{`{"a": 1, }`, parse.KindMismatch, 9},
		{"[1,\n 2,, 3]", parse.KindMismatch, 7},
	}
	for _, tt := range tests {
		for name, run := range map[string]func([]byte) (Value, error){
			"dynamic": func(b []byte) (Value, error) { return Parse(b) },
			"static":  ParseStatic,
		} {
			t.Run(name+"/"+tt.in, func(t *testing.T) {
				_, err := run([]byte(tt.in))
				require.Error(t, err)
				var perr *parse.Error
				require.True(t, errors.As(err, &perr))
				root := perr.Root()
				assert.Equal(t, tt.kind, root.Kind, "root error: %v", root)
				assert.Equal(t, tt.offset, root.Offset)
			})
		}
	}
}

func TestAlternativesListed(t *testing.T) {
	_, err := Parse([]byte("x"))
	require.Error(t, err)
	var perr *parse.Error
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Summary(), `one of object, array, string, number, "true", "false", "null"`)

	_, serr := ParseStatic([]byte("x"))
	require.Error(t, serr)
	assert.Equal(t, err.Error(), serr.Error())
}

func TestMatchesEncodingJSON(t *testing.T) {
	for _, doc := range corpus {
		t.Run(doc, func(t *testing.T) {
			var want any
			stdErr := stdjson.Unmarshal([]byte(doc), &want)

			got, err := Parse([]byte(doc))
			if stdErr != nil {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error (encoding/json: %v)", doc, got, stdErr)
				}
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(want, ToAny(got)); diff != "" {
				t.Errorf("Parse(%q) differs from encoding/json (-std +got):\n%s", doc, diff)
			}
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	dyn := Parser()
	cached := Parser(WithCache())
	st := StaticParser()
	for _, doc := range corpus {
		t.Run(doc, func(t *testing.T) {
			d := dyn.Parse([]byte(doc))
			s := st.Parse([]byte(doc))
			c := cached.Parse([]byte(doc))
			if diff := cmp.Diff(summarize(d), summarize(s)); diff != "" {
				t.Errorf("static differs from dynamic (-dynamic +static):\n%s", diff)
			}
			if diff := cmp.Diff(summarize(d), summarize(c)); diff != "" {
				t.Errorf("cached differs from dynamic (-dynamic +cached):\n%s", diff)
			}
		})
	}
}

type summary struct {
	Value    string
	Consumed int
	Err      string
	Status   parse.Status
}

func summarize(r parse.Result[byte, Value]) summary {
	if r.Err != nil {
		return summary{Consumed: r.Consumed, Err: r.Err.Error(), Status: r.Status}
	}
	return summary{Value: r.Value.String(), Consumed: r.Consumed}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a" : [1, 2.5, "x\n"], "b": null}`, `{"a":[1,2.5,"x\n"],"b":null}`},
		{`"\u0001"`, `"\u0001"`},
		{`1e21`, `1e+21`},
		{`-0.5`, `-0.5`},
		{`[true,false]`, `[true,false]`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())

			b, err := stdjson.Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestSurrogates(t *testing.T) {
	v, err := Parse([]byte(`"\ud83d\ude00"`))
	require.NoError(t, err)
	assert.Equal(t, String("😀"), v)

	v, err = Parse([]byte(`"\ud83dA"`))
	require.NoError(t, err)
	assert.Equal(t, String("\ufffdA"), v)
}

func TestObjectGet(t *testing.T) {
	v, err := Parse([]byte(`{"k": 1, "k": 2}`))
	require.NoError(t, err)
	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Len(t, obj, 2)
	got, ok := obj.Get("k")
	require.True(t, ok)
	assert.Equal(t, Number(2), got)
	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestConcurrentParses(t *testing.T) {
	p := Parser(WithCache())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, doc := range corpus {
				p.Parse([]byte(doc))
			}
		}()
	}
	wg.Wait()
}

func TestSharedParsers(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, doc := range corpus {
				d, derr := Parse([]byte(doc))
				s, serr := ParseStatic([]byte(doc))
				assert.NoError(t, derr, doc)
				assert.NoError(t, serr, doc)
				assert.Empty(t, cmp.Diff(ToAny(d), ToAny(s)), doc)
			}
		}()
	}
	wg.Wait()

	_, err := Parse([]byte("[1, "))
	require.Error(t, err)
	_, err = Parse([]byte("[1]"))
	require.NoError(t, err)
}

func TestGrammarVerifies(t *testing.T) {
	g, err := ebnf.Parse("json.ebnf", strings.NewReader(Grammar))
	require.NoError(t, err)
	require.NoError(t, ebnf.Verify(g, "JSON"))
}
