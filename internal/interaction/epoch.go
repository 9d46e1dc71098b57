package interaction

// Epoch is a monotonically increasing generation counter. Asynchronous results
// are tagged with the epoch current at issue time and dropped if it has moved on.
type Epoch struct {
	n uint64
}

// Current returns the current generation.
func (e *Epoch) Current() uint64 { return e.n }

// Bump starts a new generation and returns it.
func (e *Epoch) Bump() uint64 {
	e.n++
	return e.n
}

// Valid reports whether tag still matches the current generation.
func (e *Epoch) Valid(tag uint64) bool { return tag == e.n }
