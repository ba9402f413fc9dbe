package parsley

import (
	"github.com/alecthomas/parsley/sequence"
)

// SetData writes value under key in the data context, and succeeds with it.
func SetData[I, T any](key string, value T) Parser[I, T] {
	return SetDataFunc[I](key, func(*Context) T { return value })
}

// SetDataFunc writes the value returned by producer under key, and succeeds with it.
func SetDataFunc[I, T any](key string, producer func(ctx *Context) T) Parser[I, T] {
	return leaf("SET "+key, func(seq sequence.Sequence[I], ctx *Context) Result[T] {
		value := producer(ctx)
		ctx.Set(key, value)
		return Success(value, 0)
	})
}

// GetData succeeds with the data context value for key.
//
// It fails with ErrKeyNotFound if key is absent or its value is not a T.
func GetData[I, T any](key string) Parser[I, T] {
	return leaf("GET "+key, func(seq sequence.Sequence[I], ctx *Context) Result[T] {
		value, err := Lookup[T](ctx, key)
		if err != nil {
			return Failure[T](AnnotateError(seq.Consumed(), err))
		}
		return Success(value, 0)
	})
}

// <expr> SET key
type setResultData[I, T, U any] struct {
	node
	p       Parser[I, T]
	key     string
	project func(T) U
}

// SetResultData writes the value of a successful parse of p under key.
func SetResultData[I, T any](p Parser[I, T], key string) Parser[I, T] {
	return SetResultDataFunc(p, key, func(value T) T { return value })
}

// SetResultDataFunc writes project(value) of a successful parse of p under key.
//
// The result of p is returned unchanged. Nothing is written if p fails.
func SetResultDataFunc[I, T, U any](p Parser[I, T], key string, project func(T) U) Parser[I, T] {
	return &setResultData[I, T, U]{node: node{children: []Node{p}}, p: p, key: key, project: project}
}

func (s *setResultData[I, T, U]) Describe(children []string) string {
	return children[0] + " SET " + s.key
}

func (s *setResultData[I, T, U]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	r := s.p.Parse(seq, ctx)
	if r.OK() {
		ctx.Set(s.key, s.project(r.Value()))
	}
	return r
}
