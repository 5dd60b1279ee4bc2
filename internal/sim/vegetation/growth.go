package vegetation

import (
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
)

// SoundSink receives ambient sound triggers. It must not fail and must not
// influence simulation state.
type SoundSink interface {
	PlayTileSound(name string, t gamemap.TileIndex)
}

// Ambient sound names raised by climate side transitions.
const (
	SoundRainforest1 = "RAINFOREST_1"
	SoundRainforest2 = "RAINFOREST_2"
	SoundRainforest3 = "RAINFOREST_3"
	SoundRainforest4 = "RAINFOREST_4"
	SoundArcticSnow1 = "ARCTIC_SNOW_1"
	SoundArcticSnow2 = "ARCTIC_SNOW_2"
)

var rainforestSounds = [4]string{SoundRainforest1, SoundRainforest2, SoundRainforest3, SoundRainforest4}

// TileLoop advances one vegetation cell by one scheduled sweep. cycle is
// the scheduler-provided phase for this tile (coordinate hash plus tick
// cycle); the growth transition itself only runs when cycle&15 == 15,
// grass regrowth every 8th visit. Climate side transitions always run.
func TileLoop(e Env, t gamemap.TileIndex, cycle uint32) {
	if e.Map.TreeGround(t) != gamemap.TreeGroundShore {
		switch e.Settings.Climate {
		case ClimateTropic:
			tileLoopDesert(e, t)
		case ClimateArctic:
			tileLoopAlps(e, t)
		}
	}

	// Grass under trees regrows at the clear-tile rate.
	if cycle&7 == 7 && e.Map.TreeGround(t) == gamemap.TreeGroundGrass {
		if d := e.Map.TreeDensity(t); d < 3 {
			e.Map.SetTreeGroundDensity(t, gamemap.TreeGroundGrass, d+1)
		}
	}

	if cycle&15 < 15 {
		return
	}

	if e.Settings.Spread == SpreadFrozen {
		return
	}

	if gr := e.Settings.GrowthRate; gr > GrowthNormal {
		if gr == GrowthFrozen {
			return
		}
		// Slow tiers: accept the transition with geometrically
		// decreasing probability.
		gates := [...]uint32{0x10000 / 5, 0x10000 / 20, 0x10000 / 120}
		if rng.GB(e.Rand.Next(), 0, 16) >= gates[gr-1] {
			return
		}
	}

	stepGrowth(e, t)
}

// stepGrowth is the stage state machine proper.
func stepGrowth(e Env, t gamemap.TileIndex) {
	switch e.Map.TreeGrowth(t) {
	case 3: // mature
		if e.Settings.Climate == ClimateTropic &&
			Species(e.Map.TreeSpecies(t)) != SpeciesCactus &&
			e.Map.Zone(t) == gamemap.ZoneDesert {
			// Slow desert growth: age without branching.
			e.Map.AddTreeGrowth(t, 1)
			return
		}
		// Ordered decision list: decay, add-in-place (falls back to
		// spread when the cell is full), spread, or nothing.
		switch rng.GB(e.Rand.Next(), 0, 3) {
		case 0:
			e.Map.AddTreeGrowth(t, 1)

		case 1:
			if tryAddTree(e, t) {
				return
			}
			trySpread(e, t)

		case 2:
			trySpread(e, t)
		}

	case 6: // terminal
		switch {
		case !canPlantExtra(e, t):
			// No spreading allowed: restart the single tree so the
			// map does not deforest itself.
			e.Map.SetTreeGrowth(t, 0)
		case e.Map.TreeCount(t) > 1:
			e.Map.AddTreeCount(t, -1)
			e.Map.SetTreeGrowth(t, 3)
		default:
			revertToGround(e, t)
		}

	default:
		e.Map.AddTreeGrowth(t, 1)
	}
}

// tryAddTree densifies the cell by one tree, bounded by the flat cap of 4
// and, under the "perfect" ruleset, the climate/height-derived cap.
func tryAddTree(e Env, t gamemap.TileIndex) bool {
	if e.Settings.Placer == PlacerPerfect {
		if e.Map.TreeCount(t) < 4 &&
			(Species(e.Map.TreeSpecies(t)) == SpeciesCactus || e.Map.TreeCount(t) < MaxTreeCount(e, t)) {
			e.Map.AddTreeCount(t, 1)
			e.Map.SetTreeGrowth(t, 0)
			return true
		}
		return false
	}
	if e.Map.TreeCount(t) < 4 && canPlantExtra(e, t) {
		e.Map.AddTreeCount(t, 1)
		e.Map.SetTreeGrowth(t, 0)
		return true
	}
	return false
}

// trySpread plants a sibling on a neighbouring tile. The "perfect" placer
// searches for a same-height position in the local footprint on sparse
// terrain; otherwise a direct 8-neighbour offset is tried.
func trySpread(e Env, t gamemap.TileIndex) {
	if !canPlantExtra(e, t) {
		return
	}

	s := e.Settings
	sp := Species(e.Map.TreeSpecies(t))

	if s.Placer == PlacerPerfect &&
		((s.Climate != ClimateTropic && e.Map.Height(t) <= SparseTreeRange(s)) ||
			sp == SpeciesCactus ||
			(s.Climate == ClimateArctic && e.Map.Height(t) >= s.HighestSnowLine()+int(s.SnowLineRange)/3)) {
		// Cacti keep their distance.
		if sp != SpeciesCactus || e.Rand.Range(100) < 50 {
			if dst := findSameHeightPosition(e, t, e.Map.Height(t), 1); dst != gamemap.InvalidTile {
				Plant(e, dst, sp, 1, 0)
			}
		}
		return
	}

	off := neighbourOffsets[e.Rand.Next()&7]
	dst := e.Map.AddWrap(t, off[0], off[1])
	if dst == gamemap.InvalidTile || !CanPlant(e, dst, false) {
		return
	}
	// Freshly cleared grass has to regrow before trees take it.
	if e.Map.Kind(dst) == gamemap.KindClear && !e.Map.IsSnowCovered(dst) &&
		e.Map.RawClearGround(dst) == gamemap.ClearGrass && e.Map.ClearDensity(dst) != 3 {
		return
	}
	Plant(e, dst, sp, 1, 0)
}

var neighbourOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0},
}

// findSameHeightPosition searches the cell's local footprint (|dx|+|dy|
// <= 16) for an eligible tile within 2 height units of height.
func findSameHeightPosition(e Env, t gamemap.TileIndex, height int, steps int) gamemap.TileIndex {
	for i := 0; i < steps; i++ {
		r := e.Rand.Next()
		dx := int(rng.GB(r, 0, 5)) - 16
		dy := int(rng.GB(r, 8, 5)) - 16
		if absInt(dx)+absInt(dy) > 16 {
			continue
		}
		cur := e.Map.AddWrap(t, dx, dy)
		if cur == gamemap.InvalidTile {
			continue
		}
		if !CanPlant(e, cur, true) {
			continue
		}
		if d := e.Map.Height(cur) - height; d > 2 || d < -2 {
			continue
		}
		return cur
	}
	return gamemap.InvalidTile
}

// revertToGround converts a terminally decayed cell back to plain ground,
// restoring the terrain its ground cover recorded.
func revertToGround(e Env, t gamemap.TileIndex) {
	switch e.Map.TreeGround(t) {
	case gamemap.TreeGroundShore:
		e.Map.MakeShore(t)
	case gamemap.TreeGroundGrass:
		e.Map.SetClear(t, gamemap.ClearGrass, e.Map.TreeDensity(t))
	case gamemap.TreeGroundRough:
		e.Map.SetClear(t, gamemap.ClearRough, 3)
	case gamemap.TreeGroundRoughSnow:
		d := e.Map.TreeDensity(t)
		e.Map.SetClear(t, gamemap.ClearRough, 3)
		e.Map.SetSnow(t, d)
	default: // snow or desert
		if e.Settings.Climate == ClimateTropic {
			e.Map.SetClear(t, gamemap.ClearDesert, e.Map.TreeDensity(t))
		} else {
			d := e.Map.TreeDensity(t)
			e.Map.SetClear(t, gamemap.ClearGrass, 3)
			e.Map.SetSnow(t, d)
		}
	}
}

// canPlantExtra reports whether run-time growth may claim new tiles here.
func canPlantExtra(e Env, t gamemap.TileIndex) bool {
	if e.Settings.Climate == ClimateTropic && e.Map.Zone(t) == gamemap.ZoneRainforest {
		return e.Settings.Spread == SpreadAll || e.Settings.Spread == SpreadRainforest
	}
	return e.Settings.Spread == SpreadAll
}

// tileLoopDesert converges desert-zone ground cover to the desert variant
// and raises rainforest ambience.
func tileLoopDesert(e Env, t gamemap.TileIndex) {
	switch e.Map.Zone(t) {
	case gamemap.ZoneDesert:
		if e.Map.TreeGround(t) != gamemap.TreeGroundSnowDesert {
			e.Map.SetTreeGroundDensity(t, gamemap.TreeGroundSnowDesert, 3)
		}

	case gamemap.ZoneRainforest:
		r := e.Rand.Next()
		if rng.Chance16(1, 200, r) && e.Settings.AmbientSounds && e.Sounds != nil {
			e.Sounds.PlayTileSound(rainforestSounds[rng.GB(r, 16, 2)], t)
		}
	}
}

// tileLoopAlps converges arctic ground cover and density toward the
// snow-line-derived target; full snow occasionally crunches.
func tileLoopAlps(e Env, t gamemap.TileIndex) {
	k := e.Map.Height(t) - e.Settings.SnowLine + 1

	if k < 0 {
		switch e.Map.TreeGround(t) {
		case gamemap.TreeGroundSnowDesert:
			e.Map.SetTreeGroundDensity(t, gamemap.TreeGroundGrass, 3)
		case gamemap.TreeGroundRoughSnow:
			e.Map.SetTreeGroundDensity(t, gamemap.TreeGroundRough, 3)
		}
		return
	}

	density := k
	if density > 3 {
		density = 3
	}

	g := e.Map.TreeGround(t)
	switch {
	case g != gamemap.TreeGroundSnowDesert && g != gamemap.TreeGroundRoughSnow:
		target := gamemap.TreeGroundSnowDesert
		if g == gamemap.TreeGroundRough {
			target = gamemap.TreeGroundRoughSnow
		}
		e.Map.SetTreeGroundDensity(t, target, density)
	case e.Map.TreeDensity(t) != density:
		e.Map.SetTreeGroundDensity(t, g, density)
	default:
		if e.Map.TreeDensity(t) == 3 {
			r := e.Rand.Next()
			if rng.Chance16(1, 200, r) && e.Settings.AmbientSounds && e.Sounds != nil {
				name := SoundArcticSnow1
				if r&0x80000000 != 0 {
					name = SoundArcticSnow2
				}
				e.Sounds.PlayTileSound(name, t)
			}
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
