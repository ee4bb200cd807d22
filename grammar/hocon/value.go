// Package hocon loads HOCON configuration documents.
//
// A document is parsed into a tree of Values and then resolved: duplicate
// keys merge (objects field by field, anything else by the latest
// definition), substitutions are replaced by the value they name in the
// merged root or by an environment variable, and value concatenations are
// joined. The result is a Config.
//
//	server {
//	  host = localhost
//	  port = 8080
//	}
//	url = "http://"${server.host}":"${server.port}
package hocon

import (
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Value is a node of a configuration tree. Substitution and Concat only
// appear in trees that have not been resolved.
type Value interface {
	// String renders the value as HOCON text.
	String() string
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	String string
	// Number keeps its literal so integers survive unchanged.
	Number string
	Array  []Value
)

// Object is an ordered set of fields.
type Object struct {
	keys   []string
	fields map[string]Value
}

// Substitution is ${path} or, when Optional, ${?path}.
type Substitution struct {
	Path     []string
	Optional bool
}

// Concat is a value concatenation such as `"http://"${host}`. Gaps[i] is
// the whitespace written between Parts[i] and Parts[i+1].
type Concat struct {
	Parts []Value
	Gaps  []string
}

func (Null) isValue()         {}
func (Bool) isValue()         {}
func (String) isValue()       {}
func (Number) isValue()       {}
func (Array) isValue()        {}
func (*Object) isValue()      {}
func (Substitution) isValue() {}
func (Concat) isValue()       {}

func (Null) String() string { return "null" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (s String) String() string { return quote(string(s)) }

func (n Number) String() string { return string(n) }

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (o *Object) String() string {
	parts := make([]string, len(o.keys))
	for i, k := range o.keys {
		parts[i] = quote(k) + ": " + o.fields[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s Substitution) String() string {
	opt := ""
	if s.Optional {
		opt = "?"
	}
	return "${" + opt + joinPath(s.Path) + "}"
}

func (c Concat) String() string {
	var b strings.Builder
	for i, p := range c.Parts {
		if i > 0 {
			b.WriteString(c.Gaps[i-1])
		}
		b.WriteString(p.String())
	}
	return b.String()
}

func quote(s string) string {
	data, err := gojson.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(data)
}

// joinPath renders a key path, quoting segments that need it.
func joinPath(path []string) string {
	parts := make([]string, len(path))
	for i, k := range path {
		if k == "" || strings.ContainsAny(k, forbidden+". \t\n\r") {
			k = quote(k)
		}
		parts[i] = k
	}
	return strings.Join(parts, ".")
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: map[string]Value{}}
}

// Keys returns the field names in definition order.
func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

// Len is the number of fields.
func (o *Object) Len() int { return len(o.keys) }

// Field returns the value of key.
func (o *Object) Field(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Set defines key, replacing any earlier value but keeping its position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

func (o *Object) remove(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			return
		}
	}
}

// setPath defines a dotted key, merging into existing objects along the
// way.
func (o *Object) setPath(path []string, v Value) {
	if len(path) == 1 {
		old, ok := o.fields[path[0]]
		if ok {
			v = merge(old, v)
		}
		o.Set(path[0], v)
		return
	}
	child, ok := o.fields[path[0]].(*Object)
	if !ok {
		child = NewObject()
	} else {
		child = child.clone()
	}
	child.setPath(path[1:], v)
	o.Set(path[0], child)
}

func (o *Object) clone() *Object {
	c := &Object{keys: append([]string(nil), o.keys...), fields: make(map[string]Value, len(o.fields))}
	for k, v := range o.fields {
		c.fields[k] = v
	}
	return c
}

// merge combines two definitions of the same key. Objects merge field by
// field; otherwise the later definition wins.
func merge(earlier, later Value) Value {
	a, ok := earlier.(*Object)
	if !ok {
		return later
	}
	b, ok := later.(*Object)
	if !ok {
		return later
	}
	m := a.clone()
	for _, k := range b.keys {
		m.setPath([]string{k}, b.fields[k])
	}
	return m
}

// MarshalJSON encodes the object as plain JSON. Field order is not kept.
func (o *Object) MarshalJSON() ([]byte, error) { return gojson.Marshal(ToAny(o)) }

// ToAny converts a resolved value to nil, bool, string, float64 or int64,
// []any and map[string]any.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case String:
		return string(v)
	case Number:
		if n, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return n
		}
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	case Array:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = ToAny(e)
		}
		return out
	case *Object:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = ToAny(v.fields[k])
		}
		return out
	}
	return nil
}
