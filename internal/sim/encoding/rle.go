package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeLayer encodes one per-tile byte layer into base64(varint pairs).
// The pairs are (value, run_len) repeated. Map layers are dominated by
// long runs of one ground type, so this stays small.
func EncodeLayer(vals []uint8) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(vals) {
		v := vals[i]
		run := 1
		for j := i + 1; j < len(vals) && vals[j] == v && run < 1<<31; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(v))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DecodeLayer decodes a layer and checks it holds exactly want values.
func DecodeLayer(b64 string, want int) ([]uint8, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, 0, want)
	for i := 0; i < len(raw); {
		v, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if v > 0xFF {
			return nil, fmt.Errorf("layer value too large: %d", v)
		}
		if int(run) > want-len(out) {
			return nil, fmt.Errorf("layer overruns %d values", want)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, uint8(v))
		}
	}
	if len(out) != want {
		return nil, fmt.Errorf("layer holds %d values, want %d", len(out), want)
	}
	return out, nil
}
