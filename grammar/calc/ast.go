// Package calc is a small calculator language:
//
//	let r = 2.5;
//	let area = 3.14159 * r * r;
//	print area;
//	print -(7 % 4) + 10 / 3;
//
// Integers stay integers until they meet a float. Division of integers
// truncates.
package calc

import (
	"strconv"
	"strings"
)

// Expr is an arithmetic expression.
type Expr interface {
	String() string
	isExpr()
}

// Lit is a number literal.
type Lit struct {
	Value Value
}

// Var is a variable reference at offset Pos of the source.
type Var struct {
	Name string
	Pos  int
}

// Neg is unary minus.
type Neg struct {
	X Expr
}

// Binary is X Op Y with Op one of + - * / %. Pos is the operator's offset.
type Binary struct {
	Op   rune
	X, Y Expr
	Pos  int
}

func (Lit) isExpr()    {}
func (Var) isExpr()    {}
func (Neg) isExpr()    {}
func (Binary) isExpr() {}

func (l Lit) String() string { return l.Value.String() }

func (v Var) String() string { return v.Name }

func (n Neg) String() string { return "(-" + n.X.String() + ")" }

func (b Binary) String() string {
	return "(" + b.X.String() + " " + string(b.Op) + " " + b.Y.String() + ")"
}

// Stmt is a statement of a program.
type Stmt interface {
	String() string
	isStmt()
}

// Let binds Name to the value of X.
type Let struct {
	Name string
	X    Expr
}

// Print emits the value of X.
type Print struct {
	X Expr
}

func (Let) isStmt()   {}
func (Print) isStmt() {}

func (l Let) String() string { return "let " + l.Name + " = " + l.X.String() + ";" }

func (p Print) String() string { return "print " + p.X.String() + ";" }

// Program is a sequence of statements.
type Program []Stmt

func (p Program) String() string {
	lines := make([]string, len(p))
	for i, s := range p {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// Value is an Int or a Float.
type Value interface {
	String() string
	float() float64
}

type (
	Int   int64
	Float float64
)

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (i Int) float() float64 { return float64(i) }

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

func (f Float) float() float64 { return float64(f) }
