package parsley

import (
	"strings"
	"testing"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/parsley/sequence"
)

func TestThen(t *testing.T) {
	p := Then(Char('a'), Char('b'))
	seq := sequence.FromString("abc")
	r := p.Parse(seq, NewContext())
	require.True(t, r.OK(), r.String())
	require.Equal(t, 'b', r.Value())
	require.Equal(t, 2, r.Consumed())

	seq = sequence.FromString("ac")
	r = p.Parse(seq, NewContext())
	require.False(t, r.OK())
	require.Equal(t, 0, seq.Consumed())
	require.True(t, errors.Is(r.Err(), ErrComposition))
	require.True(t, errors.Is(r.Err(), ErrPredicateNotSatisfied))
}

func TestRule(t *testing.T) {
	p := Rule(func(values []string) string { return strings.Join(values, "-") }, Text("a"), Text("b"), Text("c"))
	value, err := ParseString(p, "abc")
	require.NoError(t, err)
	require.Equal(t, "a-b-c", value)

	seq := sequence.FromString("abx")
	r := p.Parse(seq, NewContext())
	require.False(t, r.OK())
	require.Equal(t, 0, r.Consumed())
	require.Equal(t, 0, seq.Consumed())
	require.True(t, errors.Is(r.Err(), ErrComposition))
	require.Contains(t, r.Reason(), `step 3 of "a" "b" "c"`)

	var perr Error
	require.True(t, errors.As(r.Err(), &perr))
	require.Equal(t, 2, perr.Offset())
}

func TestTypedRules(t *testing.T) {
	type pair struct {
		Key   string
		Value int
	}
	digit := Map(Match(unicode.IsDigit), func(r rune) int { return int(r - '0') })
	p := Rule3(Text("key"), Char('='), digit, func(key string, _ rune, v int) pair {
		return pair{key, v}
	})
	value, err := ParseString(p, "key=7")
	require.NoError(t, err)
	require.Equal(t, pair{"key", 7}, value)

	sum := Rule4(digit, digit, digit, digit, func(a, b, c, d int) int { return a + b + c + d })
	total, err := ParseString(sum, "1234")
	require.NoError(t, err)
	require.Equal(t, 10, total)
}

func TestMap(t *testing.T) {
	value, err := ParseString(Map(Any[rune](), unicode.ToUpper), "a")
	require.NoError(t, err)
	require.Equal(t, 'A', value)

	_, err = ParseString(Map(Any[rune](), unicode.ToUpper), "")
	require.True(t, errors.Is(err, ErrEndOfInput))
}

func TestRepeat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []rune
		consumed int
	}{
		{"Many", "aab", []rune("aa"), 2},
		{"None", "b", []rune{}, 0},
		{"Empty", "", []rune{}, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			seq := sequence.FromString(test.input)
			r := Repeat(Char('a')).Parse(seq, NewContext())
			require.True(t, r.OK())
			require.Equal(t, test.expected, r.Value())
			require.Equal(t, test.consumed, r.Consumed())
			require.Equal(t, test.consumed, seq.Consumed())
		})
	}
}

func TestRepeatStopsOnZeroWidthMatch(t *testing.T) {
	r := Repeat(Empty[rune]()).Parse(sequence.FromString("abc"), NewContext())
	require.True(t, r.OK())
	require.Empty(t, r.Value())
}

func TestRepeatKeepsWritesOfCompletedIterations(t *testing.T) {
	ctx := NewContext()
	item := Then(Char('a'), SetResultData(Any[rune](), "last"))
	r := Repeat(item).Parse(sequence.FromString("axaya"), ctx)
	require.True(t, r.OK())
	require.Equal(t, 4, r.Consumed())
	last, err := Lookup[rune](ctx, "last")
	require.NoError(t, err)
	require.Equal(t, 'y', last)
	require.Equal(t, 1, ctx.Depth())
}

func TestOptional(t *testing.T) {
	seq := sequence.FromString("b")
	r := Optional(Char('a')).Parse(seq, NewContext())
	require.True(t, r.OK())
	require.Equal(t, rune(0), r.Value())
	require.Equal(t, 0, r.Consumed())

	r = Optional(Char('b')).Parse(seq, NewContext())
	require.True(t, r.OK())
	require.Equal(t, 'b', r.Value())
	require.Equal(t, 1, r.Consumed())
}

func nestedParens() Parser[rune, int] {
	ref := Forward[rune, int]()
	var nested Parser[rune, int] = ref
	ref.Set(First(Alternatives(
		Rule3(Char('('), nested, Char(')'), func(_ rune, depth int, _ rune) int { return depth + 1 }),
		Produce[rune](func(*Context) int { return 0 }),
	)))
	return ref
}

func TestForward(t *testing.T) {
	p := nestedParens()
	depth, err := ParseString(p, "((()))", RequireEnd())
	require.NoError(t, err)
	require.Equal(t, 3, depth)

	_, err = ParseString(p, "(()", RequireEnd())
	require.True(t, errors.Is(err, ErrTrailingInput), "%+v", err)
}

func TestForwardSetTwicePanics(t *testing.T) {
	ref := Forward[rune, rune]()
	require.False(t, ref.Resolved())
	ref.Set(Any[rune]())
	require.True(t, ref.Resolved())
	require.Panics(t, func() { ref.Set(Any[rune]()) })
}

func TestForwardUnresolvedPanics(t *testing.T) {
	ref := Forward[rune, rune]()
	require.Panics(t, func() { ref.Parse(sequence.FromString("a"), NewContext()) })
}

func TestRewindRestoresData(t *testing.T) {
	ctx := NewContext()
	p := Then(SetData[rune]("k", "v"), Fail[rune, string]())
	seq := sequence.FromString("abc")
	r := p.Parse(seq, ctx)
	require.False(t, r.OK())
	_, ok := ctx.Get("k")
	require.False(t, ok)
	require.Equal(t, 1, ctx.Depth())
	require.Equal(t, 0, seq.Consumed())
}
