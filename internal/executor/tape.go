package executor

// Tape is the byte-addressable store the executor operates on: created
// with the length given to NewTape (the Interpreter defaults to 30,000
// cells), extensible to the right on demand. Growth is a plain append, which gives amortized O(1) pushes
// with no copy-on-grow semantics externally observable.
type Tape struct {
	cells []byte
}

// NewTape allocates a tape of the given size, all cells zeroed.
func NewTape(size int) *Tape {
	return &Tape{cells: make([]byte, size)}
}

// Get reads a cell, treating any index at or past the current length as
// zero rather than growing the tape. Used for read-only look-ahead (the
// cell to the right of the pointer, for tape-driven loop counters).
func (t *Tape) Get(i int) byte {
	if i < 0 || i >= len(t.cells) {
		return 0
	}
	return t.cells[i]
}

// Set writes a cell, growing the tape by exactly the cells needed to
// reach i. The executor extends the tape with GrowTo on every rightward
// step before it writes, so its own Set calls never need to grow it.
func (t *Tape) Set(i int, v byte) {
	for i >= len(t.cells) {
		t.cells = append(t.cells, 0)
	}
	t.cells[i] = v
}

// GrowTo ensures the tape has at least n cells, used by RestRight to
// extend the tape by one cell when the pointer moves past the end.
func (t *Tape) GrowTo(n int) {
	for len(t.cells) < n {
		t.cells = append(t.cells, 0)
	}
}

// Len reports the tape's current length.
func (t *Tape) Len() int { return len(t.cells) }

// Bytes exposes the underlying cells for inspection (tests, host
// embedding). The caller must not assume the slice stays valid across
// further Set/GrowTo calls.
func (t *Tape) Bytes() []byte { return t.cells }

func mod256(v int) byte {
	v %= 256
	if v < 0 {
		v += 256
	}
	return byte(v)
}
