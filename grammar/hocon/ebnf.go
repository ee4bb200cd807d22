package hocon

import _ "embed"

// Grammar is the EBNF description of the documents Parser accepts, with
// start production "Document". It is checked with golang.org/x/exp/ebnf
// and kept by hand next to the parser.
//
//go:embed hocon.ebnf
var Grammar string
