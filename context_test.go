package parsley

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alecthomas/parsley/sequence"
)

func TestContextScopes(t *testing.T) {
	ctx := NewContext()
	ctx.Set("a", 1)

	scope := ctx.branch()
	require.Equal(t, 2, ctx.Depth())
	ctx.Set("a", 2)
	ctx.Set("b", 3)
	value, _ := ctx.Get("a")
	require.Equal(t, 2, value)

	ctx.reset(scope)
	ctx.reset(scope)
	value, _ = ctx.Get("a")
	require.Equal(t, 1, value)
	_, ok := ctx.Get("b")
	require.False(t, ok)
	require.Equal(t, 2, ctx.Depth())

	ctx.Set("b", 4)
	ctx.accept(scope)
	require.Equal(t, 1, ctx.Depth())
	value, _ = ctx.Get("b")
	require.Equal(t, 4, value)

	scope = ctx.branch()
	ctx.Set("c", 5)
	ctx.branch()
	ctx.Set("d", 6)
	ctx.abandon(scope)
	require.Equal(t, 1, ctx.Depth())
	require.Equal(t, []string{"a", "b"}, ctx.Keys())
}

func TestContextAcceptNested(t *testing.T) {
	ctx := NewContext()
	outer := ctx.branch()
	ctx.Set("x", "outer")
	ctx.branch()
	ctx.Set("x", "inner")
	ctx.Set("y", "inner")
	ctx.accept(outer)
	require.Equal(t, 1, ctx.Depth())
	x, _ := ctx.Get("x")
	require.Equal(t, "inner", x)
	require.Equal(t, []string{"x", "y"}, ctx.Keys())
}

func TestLookup(t *testing.T) {
	ctx := NewContext()
	ctx.Set("n", 1)
	n, err := Lookup[int](ctx, "n")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = Lookup[string](ctx, "n")
	require.True(t, errors.Is(err, ErrKeyNotFound))
	_, err = Lookup[int](ctx, "missing")
	require.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestMarkRewindIsIdempotent(t *testing.T) {
	seq := sequence.FromString("abc")
	ctx := NewContext()
	m := begin[rune](seq, ctx)
	for i := 0; i < 2; i++ {
		_, _ = seq.Next()
		_, _ = seq.Next()
		ctx.Set("k", i)
		require.Equal(t, 2, m.consumed())
		m.rewind()
		require.Equal(t, 0, seq.Consumed())
		require.Equal(t, 0, m.consumed())
		_, ok := ctx.Get("k")
		require.False(t, ok)
		next, err := seq.Peek()
		require.NoError(t, err)
		require.Equal(t, 'a', next)
	}
	m.rewind()
	require.Equal(t, 0, seq.Consumed())
	m.abandon()
	require.Equal(t, 1, ctx.Depth())
}

func TestContextLogger(t *testing.T) {
	ctx := NewContext()
	require.NotNil(t, ctx.Logger())
	logger := zap.NewExample()
	ctx.SetLogger(logger)
	require.Equal(t, logger, ctx.Logger())
	ctx.SetLogger(nil)
	require.NotNil(t, ctx.Logger())
	require.NotEqual(t, logger, ctx.Logger())
}
