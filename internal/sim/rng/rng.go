package rng

// Stream is a deterministic pseudo-random stream built on a counter fed
// through a 64-bit mixer. The simulation owns one synchronized stream that
// must be consumed in a fixed order every tick; a separate interactive
// stream serves editor-only operations that are excluded from the
// determinism contract.
type Stream struct {
	base uint64
	ctr  uint64
}

func New(seed int64) *Stream {
	return &Stream{base: mix64(uint64(seed))}
}

func (s *Stream) Next() uint32 {
	s.ctr++
	return uint32(mix64(s.base ^ s.ctr))
}

// Range returns a value in [0, max). max must be > 0.
func (s *Stream) Range(max uint32) uint32 {
	return uint32((uint64(s.Next()) * uint64(max)) >> 32)
}

// State exposes the consumed-draw counter for snapshots.
func (s *Stream) State() uint64 { return s.ctr }

func (s *Stream) Restore(ctr uint64) { s.ctr = ctr }

// GB extracts n bits of x starting at bit start.
func GB(x uint32, start, n uint) uint32 {
	return (x >> start) & ((1 << n) - 1)
}

// Chance16 reports whether a 1-in-(den/num) event fires for draw r,
// using the low 16 bits of r.
func Chance16(num, den uint32, r uint32) bool {
	return uint32(uint16(r)) < (num<<16)/den
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
