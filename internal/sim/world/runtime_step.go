package world

import (
	"time"

	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/vegetation"
)

func (w *World) step(commands []CommandEnvelope) {
	stepStart := time.Now()
	nowTick := w.tick.Load()

	w.sounds = w.sounds[:0]
	w.dirtyTiles = w.dirtyTiles[:0]

	env := w.env()

	// Apply commands in server-receive order.
	recorded := make([]RecordedCommand, 0, len(commands))
	for _, c := range commands {
		out, rec := w.applyCommand(env, c.Msg, nowTick)
		recorded = append(recorded, rec)
		if c.Resp != nil {
			c.Resp <- out
		}
	}

	// Vegetation sweep: a fixed slice of the map per tick so every tile
	// is visited once per 256 ticks regardless of map size.
	size := w.m.Size()
	count := size / 256
	if count < 1 {
		count = 1
	}
	base := int(nowTick) * count % size
	for k := 0; k < count; k++ {
		t := gamemap.TileIndex((base + k) % size)
		// Phase: coordinate hash plus tick cycle, so neighbouring tiles
		// do not all act on the same visit.
		cycle := uint32(int(t)%31) + uint32(nowTick>>8)
		switch w.m.Kind(t) {
		case gamemap.KindTrees:
			vegetation.TileLoop(env, t, cycle)
		case gamemap.KindClear:
			// Cleared grass regrows at the same cadence as grass under
			// trees; spread waits for full density.
			if cycle&7 == 7 && w.m.RawClearGround(t) == gamemap.ClearGrass && !w.m.IsSnowCovered(t) {
				if d := w.m.ClearDensity(t); d < 3 {
					w.m.SetClearDensity(t, d+1)
				}
			}
		}
	}

	// Run-time seeding of new trees.
	w.seeder.Step(env, nowTick)

	digest := w.stateDigest()
	if w.tickLogger != nil {
		_ = w.tickLogger.WriteTick(TickLogEntry{Tick: nowTick, Commands: recorded, Digest: digest})
	}

	w.stepObservers(nowTick, digest)

	if w.cfg.SnapshotEveryTicks > 0 && nowTick != 0 && nowTick%uint64(w.cfg.SnapshotEveryTicks) == 0 {
		snap := w.ExportSnapshot(nowTick)
		select {
		case w.snapshotSink <- snap:
		default:
			// Drop snapshot if the sink is backed up.
		}
	}

	// The tree-tile gauge needs a full map walk, so it is resampled on a
	// coarse cadence and carried forward in between.
	treeTiles := w.Metrics().TreeTiles
	if nowTick%300 == 0 {
		treeTiles = w.TreeTileCount()
	}

	stepMS := float64(time.Since(stepStart).Microseconds()) / 1000.0
	w.tick.Add(1)
	w.metrics.Store(WorldMetrics{
		Tick:       nowTick + 1,
		TreeTiles:  treeTiles,
		Companies:  len(w.companies),
		InboxDepth: len(w.inbox),
		StepMS:     stepMS,
	})
}
