// Package parsley is a parser combinator library.
//
// Parsers are built by composing primitives (Any, Match, Literal, End, ...)
// with combinators (Then, Rule, Map, FollowedBy, Select, ...). They read from
// a sequence.Sequence of arbitrary item type and return a Result, or a
// MultiResult for ambiguous parsers that yield several ranked alternatives.
//
// Here's a parser for a bracketed list of digits.
//
//	digit := Map(Match(unicode.IsDigit), func(r rune) int { return int(r - '0') })
//	list := Rule3(Char('['), Repeat(digit), Char(']'),
//		func(_ rune, digits []int, _ rune) []int { return digits })
//	digits, err := ParseString(list, "[123]")
//
// Failures are values, never panics. Every combinator that backtracks
// restores both the sequence position and the data Context scope it
// started with, so writes made by SetData during an abandoned attempt are
// undone along with the input it consumed.
//
// BNF renders the grammar reachable from any parser, referencing named
// parsers by name and terminating on recursive grammars built with Forward.
package parsley
