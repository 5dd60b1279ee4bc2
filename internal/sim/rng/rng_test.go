package rng

import "testing"

func TestStream_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if got, want := a.Next(), b.Next(); got != want {
			t.Fatalf("draw %d diverged: %d vs %d", i, got, want)
		}
	}
}

func TestStream_SeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same > 2 {
		t.Fatalf("streams with different seeds agreed on %d/100 draws", same)
	}
}

func TestStream_RangeBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		if v := s.Range(13); v >= 13 {
			t.Fatalf("Range(13) returned %d", v)
		}
	}
}

func TestStream_StateRestore(t *testing.T) {
	a := New(99)
	for i := 0; i < 57; i++ {
		a.Next()
	}
	ctr := a.State()
	want := a.Next()

	b := New(99)
	b.Restore(ctr)
	if got := b.Next(); got != want {
		t.Fatalf("restored stream diverged: got %d want %d", got, want)
	}
}

func TestGB(t *testing.T) {
	x := uint32(0xABCD1234)
	if got := GB(x, 0, 8); got != 0x34 {
		t.Fatalf("GB low byte: got %#x", got)
	}
	if got := GB(x, 24, 8); got != 0xAB {
		t.Fatalf("GB high byte: got %#x", got)
	}
	if got := GB(x, 16, 3); got != 0xCD&7 {
		t.Fatalf("GB 3 bits: got %#x", got)
	}
}

func TestChance16(t *testing.T) {
	// 1-in-1 always fires, 0 numerator never fires.
	if !Chance16(1, 1, 0xFFFF) {
		t.Fatalf("certain chance did not fire")
	}
	if Chance16(0, 200, 0) {
		t.Fatalf("zero chance fired")
	}
	// 1-in-200 fires roughly 1/200 of the time over the draw space.
	hits := 0
	s := New(3)
	for i := 0; i < 200000; i++ {
		if Chance16(1, 200, s.Next()) {
			hits++
		}
	}
	if hits < 500 || hits > 1500 {
		t.Fatalf("1-in-200 fired %d/200000 times", hits)
	}
}
