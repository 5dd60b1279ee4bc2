package encoding

import "testing"

func TestLayer_RoundTrip(t *testing.T) {
	in := make([]uint8, 0, 200)
	in = append(in, 1, 1, 1, 2, 2, 3)
	for i := 0; i < 150; i++ {
		in = append(in, 7)
	}
	in = append(in, 9, 10, 10, 10)

	enc := EncodeLayer(in)
	out, err := DecodeLayer(enc, len(in))
	if err != nil {
		t.Fatalf("DecodeLayer: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, out[i], in[i])
		}
	}
}

func TestLayer_LengthChecked(t *testing.T) {
	enc := EncodeLayer([]uint8{1, 1, 1, 1})
	if _, err := DecodeLayer(enc, 3); err == nil {
		t.Fatalf("expected overrun error")
	}
	if _, err := DecodeLayer(enc, 5); err == nil {
		t.Fatalf("expected underrun error")
	}
}

func TestLayer_BadBase64(t *testing.T) {
	if _, err := DecodeLayer("!not-base64!", 4); err == nil {
		t.Fatalf("expected decode error")
	}
}
