package calc

import _ "embed"

// Grammar is the EBNF description of the language, with start production
// "Program". Identifiers exclude the keywords let and print.
//
//go:embed calc.ebnf
var Grammar string
