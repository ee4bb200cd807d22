// Package parse is a parser-combinator engine for fully materialized input.
//
// A Parser is a function from a State, an immutable cursor into a []T, to a
// Result. Combinators build larger parsers from smaller ones; grammars are
// ordinary Go values built once and run many times.
//
// # Commit and backtrack
//
// Every failure carries a Status and the number of tokens consumed before
// it. Or tries its alternatives from the same state and moves to the next
// one only when the failure is uncommitted and consumed nothing. Attempt
// turns a failure back into a backtrackable one; Commit forces the opposite.
// Convert failures are always committed. In a repetition with a separator,
// a separator that consumed input commits to the element after it.
//
// When all alternatives fail, Or reports the failure that got furthest. If
// several stopped at the same offset the error lists what each expected.
//
// # Errors
//
// Failures are *Error values. Name wraps an error with a label so the
// rendered message reads as a breadcrumb trail:
//
//	array at offset 0: expected ']' at offset 7, found "}"
//
// Describe turns an error into a file:line:col diagnostic.
//
// # Backends
//
// This package is the dynamic backend: every parser is a closure. Package
// static provides the same combinators as concrete generic types and shares
// State, Result and Error with this package.
package parse
