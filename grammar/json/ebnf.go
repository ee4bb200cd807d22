package json

import _ "embed"

// Grammar is the EBNF description of the language the parsers accept, with
// start production "JSON". It documents the grammar and is checked with
// golang.org/x/exp/ebnf; the parsers are not generated from it.
//
//go:embed json.ebnf
var Grammar string
