package grammars

import (
	"unicode"

	"github.com/alecthomas/parsley"
)

var dictionary = []string{
	"a", "an", "and", "as", "hi", "his", "is", "this",
	"man", "now", "snow", "snowman", "sand", "sandwich", "which", "wich",
}

func fewestWords(alts parsley.MultiResult[[]string]) (parsley.Alternative[[]string], bool) {
	if alts.Len() == 0 {
		return parsley.Alternative[[]string]{}, false
	}
	best := alts[0]
	for _, alt := range alts[1:] {
		if len(alt.Value) < len(best.Value) {
			best = alt
		}
	}
	return best, true
}

// segmentations yields one alternative per dictionary word that can start
// the input, each followed by rest.
func segmentations(rest parsley.Parser[rune, []string]) parsley.MultiParser[rune, []string] {
	branches := []parsley.Parser[rune, []string]{
		parsley.Map(parsley.Then(parsley.Repeat(parsley.Match(unicode.IsSpace)), parsley.End[rune]()),
			func(parsley.Unit) []string { return []string{} }),
	}
	for _, word := range dictionary {
		branches = append(branches, parsley.Rule2(parsley.Text(word), rest, func(head string, tail []string) []string {
			return append([]string{head}, tail...)
		}))
	}
	return parsley.Alternatives(branches...)
}

// Segmentations of run-together words, one alternative per possible first
// word, in dictionary order. The remainder of each is split by Words.
func Segmentations() parsley.MultiParser[rune, []string] {
	return segmentations(Words())
}

// Words splits run-together words into dictionary words.
//
// Most inputs split more than one way. The split with the fewest words wins,
// and ties go to the first in dictionary order.
func Words() parsley.Parser[rune, []string] {
	ref := parsley.Forward[rune, []string]()
	words := parsley.Named(parsley.Select(segmentations(ref), fewestWords), "words")
	ref.Set(words)
	return words
}
