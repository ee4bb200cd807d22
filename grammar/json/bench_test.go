package json

import (
	stdjson "encoding/json"
	"fmt"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
)

// benchDocument builds an array of n records mixing every value kind.
func benchDocument(n int) []byte {
	var b strings.Builder
	b.WriteString("[\n")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, `  {"id": %d, "name": "item \"%d\"", "price": %d.25, "tags": ["a", "bé"], "active": %t, "parent": null}`, i, i, i, i%2 == 0)
	}
	b.WriteString("\n]")
	return []byte(b.String())
}

func BenchmarkParse(b *testing.B) {
	doc := benchDocument(500)
	dyn := Parser()
	st := StaticParser()

	decoders := []struct {
		name   string
		decode func([]byte) error
	}{
		{"dynamic", func(d []byte) error {
			_, err := dyn.Parse(d).Get()
			return err
		}},
		{"static", func(d []byte) error {
			_, err := st.Parse(d).Get()
			return err
		}},
		{"encoding-json", func(d []byte) error {
			var v any
			return stdjson.Unmarshal(d, &v)
		}},
		{"goccy-go-json", func(d []byte) error {
			var v any
			return gojson.Unmarshal(d, &v)
		}},
		{"jsoniter", func(d []byte) error {
			var v any
			return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(d, &v)
		}},
	}
	for _, dec := range decoders {
		b.Run(dec.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(doc)))
			for i := 0; i < b.N; i++ {
				if err := dec.decode(doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestBenchDocumentParses(t *testing.T) {
	doc := benchDocument(3)
	v, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse(benchDocument) error = %v", err)
	}
	var want any
	if err := jsoniter.Unmarshal(doc, &want); err != nil {
		t.Fatalf("jsoniter.Unmarshal error = %v", err)
	}
	var other any
	if err := gojson.Unmarshal(doc, &other); err != nil {
		t.Fatalf("gojson.Unmarshal error = %v", err)
	}
	if got := ToAny(v); fmt.Sprint(got) != fmt.Sprint(want) || fmt.Sprint(got) != fmt.Sprint(other) {
		t.Errorf("ToAny(Parse(doc)) = %v, want %v", got, want)
	}
}
