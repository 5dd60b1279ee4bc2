package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"tilehaul.ai/internal/sim/gamemap"
)

// stateDigest hashes the full simulation state into a hex string. Two
// worlds with equal seeds and equal command histories must produce equal
// digests at every tick.
func (w *World) stateDigest() string {
	h := sha256.New()

	var hdr [24]byte
	binary.LittleEndian.PutUint64(hdr[0:8], w.tick.Load())
	binary.LittleEndian.PutUint64(hdr[8:16], w.rand.State())
	binary.LittleEndian.PutUint64(hdr[16:24], uint64(w.seeder.Counter()))
	h.Write(hdr[:])

	var buf [8]byte
	for t := gamemap.TileIndex(0); int(t) < w.m.Size(); t++ {
		buf[0] = byte(w.m.Kind(t))
		buf[1] = byte(w.m.Height(t))
		buf[2] = byte(w.m.Zone(t))
		switch w.m.Kind(t) {
		case gamemap.KindClear:
			buf[3] = byte(w.m.RawClearGround(t))
			buf[4] = byte(w.m.ClearDensity(t))
			if w.m.IsSnowCovered(t) {
				buf[5] = 1
			} else {
				buf[5] = 0
			}
			buf[6], buf[7] = 0, 0
		case gamemap.KindTrees:
			buf[3] = byte(w.m.TreeSpecies(t))
			buf[4] = byte(w.m.TreeCount(t))
			buf[5] = byte(w.m.TreeGrowth(t))
			buf[6] = byte(w.m.TreeGround(t))
			buf[7] = byte(w.m.TreeDensity(t))
		case gamemap.KindWater:
			if w.m.IsCoast(t) {
				buf[3] = 1
			} else {
				buf[3] = 0
			}
			if w.m.HasRaisedCorner(t) {
				buf[4] = 1
			} else {
				buf[4] = 0
			}
			buf[5], buf[6], buf[7] = 0, 0, 0
		}
		h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}
