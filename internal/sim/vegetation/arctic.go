package vegetation

// Arctic occurrence table: probability weights (0..255) for a tree to
// appear, indexed by normalised distance from the snow line. Derived data,
// memoized until the configured range changes.

// BuildOccurrenceTable derives the weight sequence for a snow-line range.
// Index 0 is always 255; the tail approximates 256*exp(-3*d/range) with
// integer math and stops at the first zero weight.
func BuildOccurrenceTable(rangeVal uint8) []uint8 {
	out := make([]uint8, 1, int(rangeVal)*5/4+1)
	out[0] = 255
	if rangeVal == 0 {
		return out
	}
	for i := uint32(1); i < 256; i++ {
		// 256 * ((1 - (3*d/range)/6) ** 6), evaluated as
		// ((256 - 128*d/range) ** 6) >> 40.
		x := 256 - (128*i)/uint32(rangeVal)
		v := x
		v *= x
		v *= x
		v *= x
		v >>= 16
		v *= x
		v *= x
		v >>= 24
		if v == 0 {
			break
		}
		out = append(out, uint8(v))
	}
	return out
}

var (
	occurrenceRange uint8 = 0xFF // sentinel: forces first build
	occurrenceTable []uint8
)

// occurrenceFor returns the memoized table, rebuilding when the range
// setting changed since the last call.
func occurrenceFor(rangeVal uint8) []uint8 {
	if rangeVal != occurrenceRange || occurrenceTable == nil {
		occurrenceTable = BuildOccurrenceTable(rangeVal)
		occurrenceRange = rangeVal
	}
	return occurrenceTable
}
