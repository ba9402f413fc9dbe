package sequence

import (
	"bufio"
	"io"

	"github.com/cockroachdb/errors"
)

// Reader is a rune Sequence read lazily from an io.Reader.
//
// Every rune read is retained so that any Checkpoint can be rewound to.
type Reader struct {
	r      *bufio.Reader
	buf    []rune
	cursor int
	eof    bool
	err    error
}

var _ Sequence[rune] = &Reader{}

// FromReader creates a rune Sequence reading from r.
func FromReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// fill ensures the rune at the cursor is buffered, if one exists.
func (r *Reader) fill() {
	if r.cursor < len(r.buf) || r.eof {
		return
	}
	rn, _, err := r.r.ReadRune()
	if err == io.EOF {
		r.eof = true
		return
	} else if err != nil {
		r.eof = true
		r.err = errors.Wrapf(err, "offset %d", len(r.buf))
		return
	}
	r.buf = append(r.buf, rn)
}

func (r *Reader) Peek() (rune, error) {
	r.fill()
	if r.cursor >= len(r.buf) {
		if r.err != nil {
			return EOF, r.err
		}
		return EOF, ErrEndOfInput
	}
	return r.buf[r.cursor], nil
}

func (r *Reader) Next() (rune, error) {
	rn, err := r.Peek()
	if err != nil {
		return rn, err
	}
	r.cursor++
	return rn, nil
}

func (r *Reader) AtEnd() bool {
	r.fill()
	return r.cursor >= len(r.buf)
}

func (r *Reader) Consumed() int { return r.cursor }

func (r *Reader) Previous() (rune, bool) {
	if r.cursor == 0 {
		return EOF, false
	}
	return r.buf[r.cursor-1], true
}

func (r *Reader) Checkpoint() Checkpoint {
	return Checkpoint{owner: r, offset: r.cursor}
}

func (r *Reader) Rewind(cp Checkpoint) {
	cp.mustBelongTo(r)
	r.cursor = cp.offset
}

// Err returns the first non-EOF error encountered reading the underlying io.Reader.
func (r *Reader) Err() error { return r.err }

// EOF is the rune returned alongside an error when no rune is available.
const EOF rune = -1
