package parsley

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type config struct {
	ctx        *Context
	logger     *zap.Logger
	data       []keyValue
	requireEnd bool
}

type keyValue struct {
	key   string
	value any
}

// An Option to modify the behaviour of the top-level Parse functions.
type Option func(c *config) error

// WithContext parses with an existing data Context rather than a fresh one.
func WithContext(ctx *Context) Option {
	return func(c *config) error {
		if ctx == nil {
			return errors.New("WithContext requires a non-nil Context")
		}
		c.ctx = ctx
		return nil
	}
}

// WithData seeds the data Context with key before parsing.
func WithData(key string, value any) Option {
	return func(c *config) error {
		c.data = append(c.data, keyValue{key, value})
		return nil
	}
}

// RequireEnd fails the parse with ErrTrailingInput if input remains after a successful match.
func RequireEnd() Option {
	return func(c *config) error {
		c.requireEnd = true
		return nil
	}
}

func configure(options []Option) (*config, error) {
	c := &config{}
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	if c.ctx == nil {
		c.ctx = NewContext()
	}
	if c.logger != nil {
		c.ctx.SetLogger(c.logger)
	}
	for _, kv := range c.data {
		c.ctx.Set(kv.key, kv.value)
	}
	return c, nil
}
