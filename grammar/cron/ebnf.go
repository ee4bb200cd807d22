package cron

import _ "embed"

// Grammar is the EBNF description of cron expressions, start production
// "Cron". It is documentation checked with golang.org/x/exp/ebnf.
//
//go:embed cron.ebnf
var Grammar string
