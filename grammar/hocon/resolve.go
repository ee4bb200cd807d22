package hocon

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("no value at path")
	ErrWrongType  = errors.New("wrong value type")
	ErrUnresolved = errors.New("unresolved substitution")
	ErrCycle      = errors.New("substitution cycle")
	ErrConcat     = errors.New("cannot concatenate values of different types")
)

// PathError records the path an error is about.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }

type resolver struct {
	root   *Object
	env    func(string) (string, bool)
	active map[string]bool
}

// resolve replaces substitutions and joins concatenations. ok is false for
// a value that disappears, which only happens through ${?path}.
func (r *resolver) resolve(v Value) (Value, bool, error) {
	switch v := v.(type) {
	case *Object:
		out := NewObject()
		for _, k := range v.keys {
			rv, ok, err := r.resolve(v.fields[k])
			if err != nil {
				return nil, false, err
			}
			if ok {
				out.Set(k, rv)
			}
		}
		return out, true, nil
	case Array:
		out := make(Array, 0, len(v))
		for _, e := range v {
			rv, ok, err := r.resolve(e)
			if err != nil {
				return nil, false, err
			}
			if ok {
				out = append(out, rv)
			}
		}
		return out, true, nil
	case Substitution:
		return r.substitute(v)
	case Concat:
		return r.concat(v)
	}
	return v, true, nil
}

func (r *resolver) substitute(s Substitution) (Value, bool, error) {
	key := joinPath(s.Path)
	if r.active[key] {
		return nil, false, &PathError{Path: key, Err: ErrCycle}
	}
	r.active[key] = true
	defer delete(r.active, key)

	v, found, err := r.lookup(s.Path)
	if err != nil {
		return nil, false, err
	}
	if found {
		rv, ok, err := r.resolve(v)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return rv, true, nil
		}
	}
	if r.env != nil {
		if e, ok := r.env(strings.Join(s.Path, ".")); ok {
			return String(e), true, nil
		}
	}
	if s.Optional {
		return nil, false, nil
	}
	return nil, false, &PathError{Path: key, Err: ErrUnresolved}
}

// lookup walks path from the root, resolving unresolved intermediate values
// on the way.
func (r *resolver) lookup(path []string) (Value, bool, error) {
	var cur Value = r.root
	for _, k := range path {
		switch cur.(type) {
		case Substitution, Concat:
			rv, ok, err := r.resolve(cur)
			if err != nil || !ok {
				return nil, false, err
			}
			cur = rv
		}
		obj, ok := cur.(*Object)
		if !ok {
			return nil, false, nil
		}
		if cur, ok = obj.fields[k]; !ok {
			return nil, false, nil
		}
	}
	return cur, true, nil
}

func (r *resolver) concat(c Concat) (Value, bool, error) {
	var parts []Value
	var gaps []string
	for i, p := range c.Parts {
		rv, ok, err := r.resolve(p)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		if len(parts) > 0 {
			gaps = append(gaps, c.Gaps[i-1])
		}
		parts = append(parts, rv)
	}
	switch len(parts) {
	case 0:
		return nil, false, nil
	case 1:
		return parts[0], true, nil
	}

	switch first := parts[0].(type) {
	case *Object:
		var acc Value = first
		for _, p := range parts[1:] {
			if _, ok := p.(*Object); !ok {
				return nil, false, fmt.Errorf("%w: object and %s", ErrConcat, kindOf(p))
			}
			acc = merge(acc, p)
		}
		return acc, true, nil
	case Array:
		acc := append(Array(nil), first...)
		for _, p := range parts[1:] {
			a, ok := p.(Array)
			if !ok {
				return nil, false, fmt.Errorf("%w: array and %s", ErrConcat, kindOf(p))
			}
			acc = append(acc, a...)
		}
		return acc, true, nil
	}

	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString(gaps[i-1])
		}
		s, ok := text(p)
		if !ok {
			return nil, false, fmt.Errorf("%w: string and %s", ErrConcat, kindOf(p))
		}
		b.WriteString(s)
	}
	return String(b.String()), true, nil
}

// text is the string form of a scalar.
func text(v Value) (string, bool) {
	switch v := v.(type) {
	case String:
		return string(v), true
	case Number:
		return string(v), true
	case Bool, Null:
		return v.String(), true
	}
	return "", false
}

func kindOf(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case String:
		return "string"
	case Number:
		return "number"
	case Array:
		return "array"
	case *Object:
		return "object"
	}
	return "unresolved value"
}
