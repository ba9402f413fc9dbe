package grammars

import (
	"strings"
	"unicode"

	"github.com/alecthomas/parsley"
)

// Property of an INI document.
type Property struct {
	Section string
	Key     string
	Value   string
}

const sectionKey = "section"

func isInlineSpace(r rune) bool { return r == ' ' || r == '\t' }

// INI parses "key = value" properties grouped under "[section]" headers.
//
// The current section is tracked in the data context, so each property
// records the header it appeared under.
func INI() parsley.Parser[rune, []Property] {
	blank := parsley.Repeat(parsley.Named(parsley.Match(isInlineSpace), "blank"))
	ident := parsley.Named(parsley.Rule2(
		parsley.Match(unicode.IsLetter),
		parsley.Repeat(parsley.Match(func(r rune) bool { return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) })),
		func(first rune, rest []rune) string { return string(append([]rune{first}, rest...)) }), "ident")
	comment := parsley.Named(parsley.Rule2(
		parsley.Match(func(r rune) bool { return r == ';' || r == '#' }),
		parsley.Repeat(parsley.Match(func(r rune) bool { return r != '\n' })),
		func(rune, []rune) parsley.Unit { return parsley.Unit{} }), "comment")
	eol := parsley.Rule2(parsley.EndOfLine(), parsley.Optional(parsley.Char('\n')),
		func(parsley.Unit, rune) parsley.Unit { return parsley.Unit{} })

	section := parsley.Named(parsley.Rule3(
		parsley.Char('['),
		parsley.SetResultData(ident, sectionKey),
		parsley.Char(']'),
		func(rune, string, rune) *Property { return nil }), "section")

	value := parsley.Named(parsley.Map(
		parsley.Repeat(parsley.Match(func(r rune) bool { return r != '\n' && r != ';' && r != '#' })),
		func(runes []rune) string { return strings.TrimSpace(string(runes)) }), "value")
	property := parsley.Named(parsley.Rule4(
		parsley.Optional(parsley.GetData[rune, string](sectionKey)),
		ident,
		parsley.Rule3(blank, parsley.Char('='), blank, func([]rune, rune, []rune) parsley.Unit { return parsley.Unit{} }),
		value,
		func(section, key string, _ parsley.Unit, value string) *Property {
			return &Property{Section: section, Key: key, Value: value}
		}), "property")

	line := parsley.Named(parsley.Rule4(
		parsley.Then(parsley.StartOfLine(), blank),
		parsley.Optional(parsley.First(parsley.Alternatives(section, property))),
		parsley.Then(blank, parsley.Optional(comment)),
		eol,
		func(_ []rune, p *Property, _ parsley.Unit, _ parsley.Unit) *Property { return p }), "line")

	return parsley.Named(parsley.Rule2(parsley.Repeat(line), parsley.End[rune](),
		func(lines []*Property, _ parsley.Unit) []Property {
			out := []Property{}
			for _, p := range lines {
				if p != nil {
					out = append(out, *p)
				}
			}
			return out
		}), "ini")
}
