package calc

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUndefined      = errors.New("undefined variable")
	ErrDivisionByZero = errors.New("division by zero")
)

// RuntimeError is a failure while evaluating the expression at offset Pos.
type RuntimeError struct {
	Pos int
	Err error
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("offset %d: %v", e.Pos, e.Err) }

func (e *RuntimeError) Unwrap() error { return e.Err }

// Interpreter executes programs. Variables persist across Exec calls.
type Interpreter struct {
	vars map[string]Value
}

func NewInterpreter() *Interpreter {
	return &Interpreter{vars: map[string]Value{}}
}

// Lookup returns the value bound to name.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	v, ok := in.vars[name]
	return v, ok
}

// Exec runs p and returns the printed values. Statements before a failing
// one keep their effect.
func (in *Interpreter) Exec(p Program) ([]Value, error) {
	var out []Value
	for _, s := range p {
		switch s := s.(type) {
		case Let:
			v, err := in.Eval(s.X)
			if err != nil {
				return out, err
			}
			in.vars[s.Name] = v
		case Print:
			v, err := in.Eval(s.X)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// Eval computes the value of x.
func (in *Interpreter) Eval(x Expr) (Value, error) {
	switch x := x.(type) {
	case Lit:
		return x.Value, nil
	case Var:
		v, ok := in.vars[x.Name]
		if !ok {
			return nil, &RuntimeError{Pos: x.Pos, Err: fmt.Errorf("%w %s", ErrUndefined, x.Name)}
		}
		return v, nil
	case Neg:
		v, err := in.Eval(x.X)
		if err != nil {
			return nil, err
		}
		if i, ok := v.(Int); ok {
			return -i, nil
		}
		return -v.(Float), nil
	case Binary:
		a, err := in.Eval(x.X)
		if err != nil {
			return nil, err
		}
		b, err := in.Eval(x.Y)
		if err != nil {
			return nil, err
		}
		v, err := apply(x.Op, a, b)
		if err != nil {
			return nil, &RuntimeError{Pos: x.Pos, Err: err}
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown expression %T", x)
}

func apply(op rune, a, b Value) (Value, error) {
	ia, aInt := a.(Int)
	ib, bInt := b.(Int)
	if aInt && bInt {
		switch op {
		case '+':
			return ia + ib, nil
		case '-':
			return ia - ib, nil
		case '*':
			return ia * ib, nil
		case '/', '%':
			if ib == 0 {
				return nil, ErrDivisionByZero
			}
			if op == '/' {
				return ia / ib, nil
			}
			return ia % ib, nil
		}
		return nil, fmt.Errorf("unknown operator %q", op)
	}
	fa, fb := a.float(), b.float()
	switch op {
	case '+':
		return Float(fa + fb), nil
	case '-':
		return Float(fa - fb), nil
	case '*':
		return Float(fa * fb), nil
	case '/', '%':
		if fb == 0 {
			return nil, ErrDivisionByZero
		}
		if op == '/' {
			return Float(fa / fb), nil
		}
		return Float(math.Mod(fa, fb)), nil
	}
	return nil, fmt.Errorf("unknown operator %q", op)
}

// Run parses and executes src with a fresh interpreter.
func Run(src string) ([]Value, error) {
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewInterpreter().Exec(p)
}
