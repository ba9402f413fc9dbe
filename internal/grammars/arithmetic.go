package grammars

import (
	"strconv"
	"unicode"

	"github.com/alecthomas/parsley"
)

type operation struct {
	op      rune
	operand float64
}

func fold(first float64, rest []operation) float64 {
	out := first
	for _, o := range rest {
		switch o.op {
		case '+':
			out += o.operand
		case '-':
			out -= o.operand
		case '*':
			out *= o.operand
		case '/':
			out /= o.operand
		}
	}
	return out
}

// lexical holds the leaf parsers shared by the productions of a grammar.
type lexical struct {
	space parsley.Parser[rune, rune]
	digit parsley.Parser[rune, rune]
}

func newLexical() *lexical {
	return &lexical{
		space: parsley.Named(parsley.Match(unicode.IsSpace), "space"),
		digit: parsley.Named(parsley.Match(unicode.IsDigit), "digit"),
	}
}

func (l *lexical) whitespace() parsley.Parser[rune, []rune] {
	return parsley.Repeat(l.space)
}

// token matches p and any whitespace following it.
func token[T any](l *lexical, p parsley.Parser[rune, T]) parsley.Parser[rune, T] {
	return parsley.Rule2(p, l.whitespace(), func(v T, _ []rune) T { return v })
}

func (l *lexical) operator(ops ...rune) parsley.Parser[rune, rune] {
	chars := make([]parsley.Parser[rune, rune], 0, len(ops))
	for _, op := range ops {
		chars = append(chars, parsley.Char(op))
	}
	return token(l, parsley.Single(parsley.Alternatives(chars...)))
}

func (l *lexical) digits() parsley.Parser[rune, string] {
	return parsley.Rule2(l.digit, parsley.Repeat(l.digit), func(first rune, rest []rune) string {
		return string(append([]rune{first}, rest...))
	})
}

// Arithmetic evaluates infix expressions over floats with the usual precedence
// and parenthesised grouping.
func Arithmetic() parsley.Parser[rune, float64] {
	l := newLexical()
	number := parsley.Named(parsley.Map(
		parsley.Rule2(
			parsley.Optional(parsley.Char('-')),
			parsley.NotFollowedBy(
				parsley.Rule2(l.digits(), parsley.Optional(parsley.Then(parsley.Char('.'), l.digits())),
					func(whole, frac string) string {
						if frac == "" {
							return whole
						}
						return whole + "." + frac
					}),
				parsley.Match(unicode.IsLetter)),
			func(sign rune, n string) string {
				if sign == '-' {
					return "-" + n
				}
				return n
			}),
		func(s string) float64 {
			f, _ := strconv.ParseFloat(s, 64)
			return f
		}), "number")

	ref := parsley.Forward[rune, float64]()
	var expr parsley.Parser[rune, float64] = ref
	group := parsley.Rule3(token(l, parsley.Char('(')), expr, token(l, parsley.Char(')')),
		func(_ rune, v float64, _ rune) float64 { return v })
	atom := parsley.Named(parsley.First(parsley.Alternatives(token(l, number), group)), "atom")

	chain := func(operand parsley.Parser[rune, float64], ops ...rune) parsley.Parser[rune, float64] {
		tail := parsley.Rule2(l.operator(ops...), operand, func(op rune, v float64) operation {
			return operation{op, v}
		})
		return parsley.Rule2(operand, parsley.Repeat(tail), fold)
	}
	term := parsley.Named(chain(atom, '*', '/'), "term")
	ref.Set(parsley.Named(parsley.Traced(chain(term, '+', '-')), "expr"))

	return parsley.Named(parsley.Rule3(l.whitespace(), expr, parsley.End[rune](),
		func(_ []rune, v float64, _ parsley.Unit) float64 { return v }), "arithmetic")
}
