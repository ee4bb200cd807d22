// Package json parses RFC 8259 JSON documents from bytes. It carries two
// equivalent grammars, one per parser backend, and is used to check that the
// backends agree and to benchmark them against encoding/json and other
// decoders.
package json

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Value is a parsed JSON value: Null, Bool, Number, String, Array or
// Object.
type Value interface {
	// String renders the value as compact JSON.
	String() string
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	Number float64
	String string
	Array  []Value
	// Object keeps members in document order, duplicates included.
	Object []Member
)

type Member struct {
	Key   string
	Value Value
}

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

func (Null) String() string { return "null" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (n Number) String() string {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (s String) String() string { return quote(string(s)) }

func (a Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (o Object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(m.Key))
		b.WriteByte(':')
		b.WriteString(m.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

// Get returns the value of the last member named key.
func (o Object) Get(key string) (Value, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

func (n Null) MarshalJSON() ([]byte, error)   { return []byte(n.String()), nil }
func (b Bool) MarshalJSON() ([]byte, error)   { return []byte(b.String()), nil }
func (n Number) MarshalJSON() ([]byte, error) { return []byte(n.String()), nil }
func (s String) MarshalJSON() ([]byte, error) { return []byte(s.String()), nil }
func (a Array) MarshalJSON() ([]byte, error)  { return []byte(a.String()), nil }
func (o Object) MarshalJSON() ([]byte, error) { return []byte(o.String()), nil }

// ToAny converts v to the representation encoding/json decodes into an
// interface{}: nil, bool, float64, string, []any and map[string]any. Later
// duplicate keys win.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Number:
		return float64(v)
	case String:
		return string(v)
	case Array:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = ToAny(e)
		}
		return out
	case Object:
		out := make(map[string]any, len(v))
		for _, m := range v {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	}
	return nil
}

const hex = "0123456789abcdef"

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				b.WriteByte('\\')
				b.WriteByte(c)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				if c < 0x20 {
					b.WriteString(`\u00`)
					b.WriteByte(hex[c>>4])
					b.WriteByte(hex[c&0xf])
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString("\ufffd")
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}
