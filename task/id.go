package task

import "sync/atomic"

// Sequence issues monotonically increasing task ids starting at 1.
// Managers that share a Sequence never hand out the same id twice.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a sequence whose first id is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next unused id.
func (s *Sequence) Next() int {
	return int(s.last.Add(1))
}

// Observe records an id that was assigned elsewhere (for example loaded from
// a file) so that Next never returns it.
func (s *Sequence) Observe(id int) {
	for {
		last := s.last.Load()
		if int64(id) <= last {
			return
		}
		if s.last.CompareAndSwap(last, int64(id)) {
			return
		}
	}
}

// Last returns the most recently issued or observed id (0 if none).
func (s *Sequence) Last() int {
	return int(s.last.Load())
}
