package sequence

import (
	"github.com/cockroachdb/errors"
)

// ErrEndOfInput is returned when an item is requested from an exhausted sequence.
var ErrEndOfInput = errors.New("unexpected end of input")
