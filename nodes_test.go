package parsley

import (
	"testing"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/parsley/sequence"
)

func TestAny(t *testing.T) {
	seq := sequence.FromString("abc")
	ctx := NewContext()
	p := Any[rune]()
	for _, expected := range "abc" {
		r := p.Parse(seq, ctx)
		require.True(t, r.OK(), r.String())
		require.Equal(t, expected, r.Value())
		require.Equal(t, 1, r.Consumed())
	}
	r := p.Parse(seq, ctx)
	require.False(t, r.OK())
	require.True(t, errors.Is(r.Err(), ErrEndOfInput), r.String())
	require.Equal(t, 0, r.Consumed())
	require.Equal(t, 3, seq.Consumed())
}

func TestPeekIsIdempotent(t *testing.T) {
	seq := sequence.FromString("xy")
	ctx := NewContext()
	p := Peek[rune]()
	for i := 0; i < 3; i++ {
		r := p.Parse(seq, ctx)
		require.True(t, r.OK())
		require.Equal(t, 'x', r.Value())
		require.Equal(t, 0, r.Consumed())
		require.Equal(t, 0, seq.Consumed())
	}

	empty := sequence.FromString("")
	r := p.Parse(empty, ctx)
	require.True(t, errors.Is(r.Err(), ErrEndOfInput))
}

func TestEndAndEndOfLine(t *testing.T) {
	seq := sequence.FromString("a\nb")
	ctx := NewContext()
	end := End[rune]()
	eol := EndOfLine()
	bol := StartOfLine()
	isEnd := IsEnd[rune]()

	type position struct {
		end, eol, bol bool
	}
	expected := []position{
		{end: false, eol: false, bol: true},
		{end: false, eol: true, bol: false},
		{end: false, eol: false, bol: true},
		{end: true, eol: true, bol: false},
	}
	for i, want := range expected {
		require.Equal(t, want.end, end.Parse(seq, ctx).OK(), "END at %d", i)
		require.Equal(t, want.eol, eol.Parse(seq, ctx).OK(), "EOL at %d", i)
		require.Equal(t, want.bol, bol.Parse(seq, ctx).OK(), "BOL at %d", i)
		require.Equal(t, want.end, isEnd.Parse(seq, ctx).Value(), "END? at %d", i)
		require.Equal(t, i, seq.Consumed())
		if i < len(expected)-1 {
			_, err := seq.Next()
			require.NoError(t, err)
		}
	}

	r := end.Parse(sequence.FromString("x"), ctx)
	require.True(t, errors.Is(r.Err(), ErrPredicateNotSatisfied))
	require.Contains(t, r.Reason(), `expected end of input but got "x"`)
}

func TestStart(t *testing.T) {
	seq := sequence.FromString("ab")
	ctx := NewContext()
	require.True(t, Start[rune]().Parse(seq, ctx).OK())
	_, _ = seq.Next()
	r := Start[rune]().Parse(seq, ctx)
	require.False(t, r.OK())
	require.True(t, errors.Is(r.Err(), ErrPredicateNotSatisfied))
}

func TestEmptyAndFail(t *testing.T) {
	for _, input := range []string{"", "abc"} {
		seq := sequence.FromString(input)
		ctx := NewContext()
		r := Empty[rune]().Parse(seq, ctx)
		require.True(t, r.OK())
		require.Equal(t, 0, r.Consumed())

		f := Fail[rune, int]().Parse(seq, ctx)
		require.False(t, f.OK())
		require.Equal(t, 0, f.Value())
		require.True(t, errors.Is(f.Err(), ErrPredicateNotSatisfied))
		require.Equal(t, 0, seq.Consumed())
	}
}

func TestProduceIsDeferred(t *testing.T) {
	calls := 0
	p := Produce[rune](func(ctx *Context) int {
		calls++
		return calls * 10
	})
	require.Equal(t, 0, calls)
	seq := sequence.FromString("abc")
	ctx := NewContext()
	require.Equal(t, 10, p.Parse(seq, ctx).Value())
	require.Equal(t, 20, p.Parse(seq, ctx).Value())
	require.Equal(t, 0, seq.Consumed())
}

func TestProduceReadsContext(t *testing.T) {
	p := Produce[rune](func(ctx *Context) string {
		v, _ := Lookup[string](ctx, "name")
		return v
	})
	value, err := ParseString(p, "", WithData("name", "parsley"))
	require.NoError(t, err)
	require.Equal(t, "parsley", value)
}

func TestMatch(t *testing.T) {
	seq := sequence.FromString("1a")
	ctx := NewContext()
	digit := Match(unicode.IsDigit)

	r := digit.Parse(seq, ctx)
	require.True(t, r.OK())
	require.Equal(t, '1', r.Value())
	require.Equal(t, 1, r.Consumed())

	r = digit.Parse(seq, ctx)
	require.False(t, r.OK())
	require.Equal(t, 1, seq.Consumed())
	require.Contains(t, r.Reason(), `unexpected "a"`)
}

func TestLiteral(t *testing.T) {
	ctx := NewContext()

	seq := sequence.FromString("hello world")
	r := Text("hello").Parse(seq, ctx)
	require.True(t, r.OK())
	require.Equal(t, "hello", r.Value())
	require.Equal(t, 5, r.Consumed())

	seq = sequence.FromString("help")
	r = Text("hello").Parse(seq, ctx)
	require.False(t, r.OK())
	require.Equal(t, 0, seq.Consumed())
	require.Contains(t, r.Reason(), `expected "hello"`)

	seq = sequence.FromString("hel")
	r = Text("hello").Parse(seq, ctx)
	require.True(t, errors.Is(r.Err(), ErrEndOfInput))
	require.Equal(t, 0, seq.Consumed())

	ints := sequence.FromSlice([]int{1, 2, 3})
	lr := Literal(1, 2).Parse(ints, ctx)
	require.True(t, lr.OK())
	require.Equal(t, []int{1, 2}, lr.Value())
}

func TestChar(t *testing.T) {
	require.True(t, Matches(Char('é'), []rune("été")))
	require.False(t, Matches(Char('e'), []rune("été")))
}
