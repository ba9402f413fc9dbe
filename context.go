package parsley

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/alecthomas/parsley/sequence"
)

// Context is the ambient key/value store threaded through a parse.
//
// Values live in a stack of scopes. Lookups search from the innermost scope
// outwards. Combinators push a scope whenever they take a checkpoint; the
// scope is folded into its parent when the attempt is accepted and dropped
// when it is abandoned, so writes are undone together with the input.
//
// A Context must not be shared by concurrent parses.
type Context struct {
	scopes []map[string]any
	logger *zap.Logger
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{scopes: []map[string]any{nil}, logger: zap.NewNop()}
}

// Set key in the current scope, shadowing any outer value.
func (c *Context) Set(key string, value any) {
	top := len(c.scopes) - 1
	if c.scopes[top] == nil {
		c.scopes[top] = map[string]any{}
	}
	c.scopes[top][key] = value
}

// Get the innermost value for key.
func (c *Context) Get(key string) (any, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if value, ok := c.scopes[i][key]; ok {
			return value, true
		}
	}
	return nil, false
}

// Lookup the innermost value for key as a T.
//
// The error is ErrKeyNotFound if the key is absent or holds a value of another type.
func Lookup[T any](c *Context, key string) (T, error) {
	var zero T
	value, ok := c.Get(key)
	if !ok {
		return zero, errors.Wrapf(ErrKeyNotFound, "no value for key %q", key)
	}
	typed, ok := value.(T)
	if !ok {
		return zero, errors.Wrapf(ErrKeyNotFound, "value for key %q is %T, not %T", key, value, zero)
	}
	return typed, nil
}

// Depth returns the number of scopes on the stack.
func (c *Context) Depth() int { return len(c.scopes) }

// Keys returns every visible key, sorted.
func (c *Context) Keys() []string {
	seen := map[string]bool{}
	keys := []string{}
	for _, scope := range c.scopes {
		for key := range scope {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	slices.Sort(keys)
	return keys
}

// Logger used by Traced parsers.
func (c *Context) Logger() *zap.Logger { return c.logger }

// SetLogger replaces the logger used by Traced parsers. A nil logger disables logging.
func (c *Context) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// branch pushes a new scope and returns its index.
func (c *Context) branch() int {
	c.scopes = append(c.scopes, nil)
	return len(c.scopes) - 1
}

// reset discards everything written at or above scope, leaving scope open.
func (c *Context) reset(scope int) {
	clear(c.scopes[scope+1:])
	c.scopes = c.scopes[:scope+1]
	c.scopes[scope] = nil
}

// accept folds scope, and anything above it, into its parent.
func (c *Context) accept(scope int) {
	writes := c.writes(scope)
	clear(c.scopes[scope:])
	c.scopes = c.scopes[:scope]
	for key, value := range writes {
		c.Set(key, value)
	}
}

// abandon drops scope and anything above it.
func (c *Context) abandon(scope int) {
	clear(c.scopes[scope:])
	c.scopes = c.scopes[:scope]
}

// writes made at or above scope, innermost winning.
func (c *Context) writes(scope int) map[string]any {
	var out map[string]any
	for _, s := range c.scopes[scope:] {
		for key, value := range s {
			if out == nil {
				out = map[string]any{}
			}
			out[key] = value
		}
	}
	return out
}

// mark pairs a sequence checkpoint with a Context scope, so that both are
// restored together.
type mark[I any] struct {
	seq   sequence.Sequence[I]
	ctx   *Context
	cp    sequence.Checkpoint
	scope int
}

func begin[I any](seq sequence.Sequence[I], ctx *Context) mark[I] {
	return mark[I]{seq: seq, ctx: ctx, cp: seq.Checkpoint(), scope: ctx.branch()}
}

// consumed since the mark was taken.
func (m mark[I]) consumed() int { return m.seq.Consumed() - m.cp.Offset() }

// rewind to the mark, discarding writes but keeping the branch open. Idempotent.
func (m mark[I]) rewind() {
	m.seq.Rewind(m.cp)
	m.ctx.reset(m.scope)
}

// accept the branch, keeping position and writes.
func (m mark[I]) accept() { m.ctx.accept(m.scope) }

// abandon the branch, restoring position and discarding writes.
func (m mark[I]) abandon() {
	m.seq.Rewind(m.cp)
	m.ctx.abandon(m.scope)
}

func (m mark[I]) writes() map[string]any { return m.ctx.writes(m.scope) }
