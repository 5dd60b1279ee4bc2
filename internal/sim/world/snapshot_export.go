package world

import (
	"fmt"

	"tilehaul.ai/internal/persistence/snapshot"
	"tilehaul.ai/internal/sim/encoding"
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
	"tilehaul.ai/internal/sim/vegetation"
)

const snapshotVersion = 1

// ExportSnapshot serializes the full world state. Must be called from the
// world goroutine (or before Run starts).
func (w *World) ExportSnapshot(nowTick uint64) snapshot.SnapshotV1 {
	cfg := w.cfg
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{Version: snapshotVersion, WorldID: cfg.ID, Tick: nowTick},

		Seed:       cfg.Seed,
		TickRate:   cfg.TickRateHz,
		SizeX:      cfg.SizeX,
		SizeY:      cfg.SizeY,
		Climate:    int(cfg.Climate),
		Placer:     int(cfg.Placer),
		Spread:     int(cfg.Spread),
		GrowthRate: cfg.GrowthRate,

		SnowLineHeight:  cfg.SnowLineHeight,
		SnowLineEnabled: cfg.SnowLineEnabled,
		SnowLineRange:   cfg.SnowLineRange,
		MapHeightLimit:  cfg.MapHeightLimit,
		InEditor:        cfg.InEditor,
		AmbientSounds:   cfg.AmbientSounds,

		PlantCost:       cfg.PlantCost,
		ClearCost:       cfg.ClearCost,
		GroundClearCost: cfg.GroundClearCost,

		CompanyTreeBudget:  cfg.CompanyTreeBudget,
		SnapshotEveryTicks: cfg.SnapshotEveryTicks,

		Map: w.exportMapLayers(),
		Counters: snapshot.CountersV1{
			Rand:   w.rand.State(),
			IRand:  w.irand.State(),
			Seeder: w.seeder.Counter(),
		},
	}

	for _, c := range w.companies {
		snap.Companies = append(snap.Companies, snapshot.CompanyV1{
			ID:              c.ID,
			BudgetRemaining: c.Budget.Remaining,
		})
	}

	return snap
}

func (w *World) exportMapLayers() snapshot.MapV1 {
	size := w.m.Size()
	kind := make([]uint8, size)
	height := make([]uint8, size)
	zone := make([]uint8, size)
	ground := make([]uint8, size)
	density := make([]uint8, size)
	snow := make([]uint8, size)
	coast := make([]uint8, size)
	raised := make([]uint8, size)
	species := make([]uint8, size)
	count := make([]uint8, size)
	growth := make([]uint8, size)

	for t := gamemap.TileIndex(0); int(t) < size; t++ {
		kind[t] = uint8(w.m.Kind(t))
		height[t] = uint8(w.m.Height(t))
		zone[t] = uint8(w.m.Zone(t))
		switch w.m.Kind(t) {
		case gamemap.KindClear:
			ground[t] = uint8(w.m.RawClearGround(t))
			density[t] = uint8(w.m.ClearDensity(t))
			if w.m.IsSnowCovered(t) {
				snow[t] = 1
			}
		case gamemap.KindTrees:
			ground[t] = uint8(w.m.TreeGround(t))
			density[t] = uint8(w.m.TreeDensity(t))
			species[t] = w.m.TreeSpecies(t)
			count[t] = uint8(w.m.TreeCount(t))
			growth[t] = uint8(w.m.TreeGrowth(t))
		case gamemap.KindWater:
			if w.m.IsCoast(t) {
				coast[t] = 1
			}
			if w.m.HasRaisedCorner(t) {
				raised[t] = 1
			}
		}
	}

	return snapshot.MapV1{
		Kind:         encoding.EncodeLayer(kind),
		Height:       encoding.EncodeLayer(height),
		Zone:         encoding.EncodeLayer(zone),
		Ground:       encoding.EncodeLayer(ground),
		Density:      encoding.EncodeLayer(density),
		Snow:         encoding.EncodeLayer(snow),
		Coast:        encoding.EncodeLayer(coast),
		RaisedCorner: encoding.EncodeLayer(raised),
		Species:      encoding.EncodeLayer(species),
		Count:        encoding.EncodeLayer(count),
		Growth:       encoding.EncodeLayer(growth),
	}
}

// NewFromSnapshot rebuilds a world from a snapshot, restoring the map,
// company budgets and the random-stream counters so the resumed world
// continues the same deterministic trajectory.
func NewFromSnapshot(snap snapshot.SnapshotV1) (*World, error) {
	if snap.Header.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}

	cfg := WorldConfig{
		ID:         snap.Header.WorldID,
		SizeX:      snap.SizeX,
		SizeY:      snap.SizeY,
		Seed:       snap.Seed,
		TickRateHz: snap.TickRate,

		Climate:    vegetation.Climate(snap.Climate),
		Placer:     vegetation.PlacerMode(snap.Placer),
		Spread:     vegetation.SpreadPolicy(snap.Spread),
		GrowthRate: snap.GrowthRate,

		SnowLineHeight:  snap.SnowLineHeight,
		SnowLineEnabled: snap.SnowLineEnabled,
		SnowLineRange:   snap.SnowLineRange,
		MapHeightLimit:  snap.MapHeightLimit,
		InEditor:        snap.InEditor,
		AmbientSounds:   snap.AmbientSounds,

		PlantCost:       snap.PlantCost,
		ClearCost:       snap.ClearCost,
		GroundClearCost: snap.GroundClearCost,

		CompanyTreeBudget:  snap.CompanyTreeBudget,
		SnapshotEveryTicks: snap.SnapshotEveryTicks,
	}
	cfg.applyDefaults()

	w := &World{
		cfg:           cfg,
		m:             gamemap.New(cfg.SizeX, cfg.SizeY),
		rand:          rng.New(cfg.Seed),
		irand:         rng.New(cfg.Seed ^ 0x1e3779b9),
		companies:     map[string]*Company{},
		inbox:         make(chan CommandEnvelope, 256),
		observerJoin:  make(chan ObserverJoinRequest, 8),
		observerLeave: make(chan string, 8),
		observers:     map[string]*observerSession{},
		stop:          make(chan struct{}),
		snapshotSink:  make(chan snapshot.SnapshotV1, 2),
	}
	w.rand.Restore(snap.Counters.Rand)
	w.irand.Restore(snap.Counters.IRand)
	w.seeder.Restore(snap.Counters.Seeder)
	w.tick.Store(snap.Header.Tick)

	if err := w.restoreMapLayers(snap.Map); err != nil {
		return nil, err
	}
	w.m.OnDirty(w.markDirty)

	for _, c := range snap.Companies {
		w.companies[c.ID] = &Company{ID: c.ID, Budget: vegetation.Budget{Remaining: c.BudgetRemaining}}
	}

	w.metrics.Store(WorldMetrics{Tick: snap.Header.Tick})
	return w, nil
}

func (w *World) restoreMapLayers(mv snapshot.MapV1) error {
	size := w.m.Size()

	decode := func(name, s string) ([]uint8, error) {
		v, err := encoding.DecodeLayer(s, size)
		if err != nil {
			return nil, fmt.Errorf("map layer %s: %w", name, err)
		}
		return v, nil
	}

	kind, err := decode("kind", mv.Kind)
	if err != nil {
		return err
	}
	height, err := decode("height", mv.Height)
	if err != nil {
		return err
	}
	zone, err := decode("zone", mv.Zone)
	if err != nil {
		return err
	}
	ground, err := decode("ground", mv.Ground)
	if err != nil {
		return err
	}
	density, err := decode("density", mv.Density)
	if err != nil {
		return err
	}
	snow, err := decode("snow", mv.Snow)
	if err != nil {
		return err
	}
	coast, err := decode("coast", mv.Coast)
	if err != nil {
		return err
	}
	raised, err := decode("raised_corner", mv.RaisedCorner)
	if err != nil {
		return err
	}
	species, err := decode("species", mv.Species)
	if err != nil {
		return err
	}
	count, err := decode("count", mv.Count)
	if err != nil {
		return err
	}
	growth, err := decode("growth", mv.Growth)
	if err != nil {
		return err
	}

	for t := gamemap.TileIndex(0); int(t) < size; t++ {
		w.m.SetHeight(t, int(height[t]))
		switch gamemap.Kind(kind[t]) {
		case gamemap.KindClear:
			w.m.SetClear(t, gamemap.ClearGround(ground[t]), int(density[t]))
			if snow[t] != 0 {
				w.m.SetSnow(t, int(density[t]))
			}
		case gamemap.KindWater:
			w.m.MakeWater(t, coast[t] != 0, raised[t] != 0)
		case gamemap.KindTrees:
			w.m.MakeTrees(t, species[t], int(count[t]), int(growth[t]), gamemap.TreeGround(ground[t]), int(density[t]))
		default:
			return fmt.Errorf("map layer kind: bad value %d at tile %d", kind[t], t)
		}
		w.m.SetZone(t, gamemap.TropicZone(zone[t]))
	}
	return nil
}
