// Package sequence defines the cursor abstraction parsers read from.
//
// A Sequence is a forward-only stream of items that can be checkpointed and
// rewound. Rewinding restores the position and the consumed count exactly as
// they were when the Checkpoint was taken.
package sequence

import (
	"fmt"
)

// Sequence is a forward cursor over items of type T.
type Sequence[T any] interface {
	// Peek returns the next item without advancing.
	//
	// At end of input the returned error satisfies errors.Is(err, ErrEndOfInput).
	Peek() (T, error)
	// Next advances past the next item and returns it.
	Next() (T, error)
	// AtEnd reports whether no items remain.
	AtEnd() bool
	// Consumed returns the number of items advanced since creation.
	Consumed() int
	// Previous returns the item immediately before the cursor, if any.
	Previous() (T, bool)
	// Checkpoint captures the current position.
	Checkpoint() Checkpoint
	// Rewind restores the position captured by cp.
	//
	// Rewind panics if cp was created by a different Sequence.
	Rewind(cp Checkpoint)
}

// Checkpoint is an opaque position token.
//
// It is only valid for the Sequence that created it.
type Checkpoint struct {
	owner  any
	offset int
}

// Offset of the checkpoint, in items consumed.
func (c Checkpoint) Offset() int { return c.offset }

func (c Checkpoint) String() string { return fmt.Sprintf("checkpoint@%d", c.offset) }

func (c Checkpoint) mustBelongTo(owner any) {
	if c.owner != owner {
		panic(fmt.Sprintf("sequence: %s rewound against a sequence that did not create it", c))
	}
}
