package sequence

// Slice is a Sequence over an in-memory slice.
type Slice[T any] struct {
	items  []T
	cursor int
}

var _ Sequence[rune] = &Slice[rune]{}

// FromSlice creates a Sequence over items.
//
// The slice is not copied and must not be mutated while the Sequence is in use.
func FromSlice[T any](items []T) *Slice[T] {
	return &Slice[T]{items: items}
}

// FromString creates a Sequence over the runes of s.
func FromString(s string) *Slice[rune] {
	return FromSlice([]rune(s))
}

func (s *Slice[T]) Peek() (T, error) {
	if s.AtEnd() {
		var zero T
		return zero, ErrEndOfInput
	}
	return s.items[s.cursor], nil
}

func (s *Slice[T]) Next() (T, error) {
	item, err := s.Peek()
	if err != nil {
		return item, err
	}
	s.cursor++
	return item, nil
}

func (s *Slice[T]) AtEnd() bool { return s.cursor >= len(s.items) }

func (s *Slice[T]) Consumed() int { return s.cursor }

func (s *Slice[T]) Previous() (T, bool) {
	if s.cursor == 0 {
		var zero T
		return zero, false
	}
	return s.items[s.cursor-1], true
}

func (s *Slice[T]) Checkpoint() Checkpoint {
	return Checkpoint{owner: s, offset: s.cursor}
}

func (s *Slice[T]) Rewind(cp Checkpoint) {
	cp.mustBelongTo(s)
	s.cursor = cp.offset
}

// Remaining returns the unconsumed items.
func (s *Slice[T]) Remaining() []T {
	return s.items[s.cursor:]
}
