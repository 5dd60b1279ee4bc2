package world

import (
	"testing"

	"tilehaul.ai/internal/protocol"
	"tilehaul.ai/internal/sim/gamemap"
)

func TestStep_ClearedGrassRegrows(t *testing.T) {
	w := newTestWorld(t, 42)
	tile := gamemap.TileIndex(0)
	w.m.SetClear(tile, gamemap.ClearGrass, 0)

	// Tile 0 is swept when the slice base wraps to zero, once every 256
	// ticks; its cycle is tick>>8, which first satisfies cycle&7 == 7 at
	// tick 7*256.
	for i := 0; i <= 7*256; i++ {
		w.StepOnce(nil)
	}
	if got := w.m.ClearDensity(tile); got != 1 {
		t.Fatalf("cleared grass density: got %d want 1", got)
	}
}

func TestStep_TreeTileGaugeCarriesSample(t *testing.T) {
	w := newTestWorld(t, 42)

	w.StepOnce(nil) // tick 0 samples the gauge
	sampled := w.Metrics().TreeTiles
	if sampled != w.TreeTileCount() {
		t.Fatalf("sampled gauge: got %d want %d", sampled, w.TreeTileCount())
	}

	// Off-sample ticks keep the last sampled value instead of publishing
	// the per-tick dirty-tile count.
	runCommand(t, w, &protocol.PlantTreesMsg{
		Type:            protocol.TypePlantTrees,
		ProtocolVersion: protocol.Version,
		CompanyID:       "C1",
		Start:           [2]int{0, 0},
		End:             [2]int{7, 7},
		Species:         -1,
	})
	if got := w.Metrics().TreeTiles; got != sampled {
		t.Fatalf("gauge between samples: got %d want %d", got, sampled)
	}
}
