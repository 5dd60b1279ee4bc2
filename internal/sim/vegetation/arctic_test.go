package vegetation

import "testing"

func TestOccurrenceTable_Shape(t *testing.T) {
	occ := BuildOccurrenceTable(8)

	if occ[0] != 255 {
		t.Fatalf("index 0: got %d want 255", occ[0])
	}
	for i := 1; i < len(occ); i++ {
		if occ[i] > occ[i-1] {
			t.Fatalf("not monotone at %d: %d > %d", i, occ[i], occ[i-1])
		}
		if occ[i] == 0 {
			t.Fatalf("zero weight kept at %d", i)
		}
	}
	// The tail must die out within a small multiple of the range.
	if len(occ) > 16 {
		t.Fatalf("table too long for range 8: %d entries", len(occ))
	}
}

func TestOccurrenceTable_ZeroRange(t *testing.T) {
	occ := BuildOccurrenceTable(0)
	if len(occ) != 1 || occ[0] != 255 {
		t.Fatalf("range 0: got %v", occ)
	}
}

func TestOccurrenceFor_Memoized(t *testing.T) {
	a := occurrenceFor(8)
	b := occurrenceFor(8)
	if &a[0] != &b[0] {
		t.Fatalf("same range rebuilt the table")
	}
	c := occurrenceFor(16)
	if len(c) <= len(a) {
		t.Fatalf("larger range should give a longer table: %d vs %d", len(c), len(a))
	}
	d := occurrenceFor(8)
	if d[0] != 255 || len(d) != len(a) {
		t.Fatalf("rebuild after range change is wrong: %v", d)
	}
}
