package parsley

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alecthomas/parsley/sequence"
)

// Trace is an Option that logs Traced parsers to logger at debug level.
func Trace(logger *zap.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

type traced[I, T any] struct {
	node
	p Parser[I, T]
}

// Traced logs each attempt to parse p to the Context's logger.
func Traced[I, T any](p Parser[I, T]) Parser[I, T] {
	return &traced[I, T]{node: node{children: []Node{p}}, p: p}
}

func (t *traced[I, T]) transparent()                      {}
func (t *traced[I, T]) Describe(children []string) string { return children[0] }

func (t *traced[I, T]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	log := ctx.Logger()
	if !log.Core().Enabled(zapcore.DebugLevel) {
		return t.p.Parse(seq, ctx)
	}
	label := t.p.Name()
	if label == "" {
		label = String(t.p)
	}
	log = log.With(zap.String("parser", label), zap.Int("offset", seq.Consumed()))
	log.Debug("enter")
	r := t.p.Parse(seq, ctx)
	if r.OK() {
		log.Debug("match", zap.Int("consumed", r.Consumed()))
	} else {
		log.Debug("no match", zap.Error(r.Err()))
	}
	return r
}
