package vegetation

import (
	"fmt"

	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
)

// Env bundles the collaborators every engine call needs: the tile grid, the
// settings snapshot, the synchronized random stream and the ambient sound
// sink. It is rebuilt by the world each tick and never retained.
type Env struct {
	Map      *gamemap.Map
	Settings Settings
	Rand     Random
	Sounds   SoundSink
}

// CanPlant reports whether t can host a vegetation cell: clear ground
// without fields or rocks, or coastal water without a raised corner.
// allowDesert admits desert ground (world generation and cacti).
// Under the "perfect" placer in arctic climate, tiles far above the snow
// line are rejected outright.
func CanPlant(e Env, t gamemap.TileIndex, allowDesert bool) bool {
	s := e.Settings
	if s.Placer == PlacerPerfect && s.Climate == ClimateArctic &&
		e.Map.Height(t) > s.HighestSnowLine()+int(s.SnowLineRange) {
		return false
	}

	switch e.Map.Kind(t) {
	case gamemap.KindWater:
		return e.Map.IsCoast(t) && !e.Map.HasRaisedCorner(t)

	case gamemap.KindClear:
		g := e.Map.RawClearGround(t)
		if g == gamemap.ClearFields || g == gamemap.ClearRocks {
			return false
		}
		return allowDesert || g != gamemap.ClearDesert

	default:
		return false
	}
}

// ChooseSpecies picks a species for t from an 8-bit seed, or
// SpeciesInvalid when nothing should appear. Pure in the seed except for
// the arctic occurrence draw, which consumes one value from e.Rand.
func ChooseSpecies(e Env, t gamemap.TileIndex, seed8 uint32) Species {
	s := e.Settings
	switch s.Climate {
	case ClimateTemperate:
		return fromSeed(SpeciesTemperate, countTemperate, seed8)

	case ClimateArctic:
		if !s.SnowLineEnabled {
			return fromSeed(SpeciesSubArctic, countSubArctic, seed8)
		}

		occ := occurrenceFor(s.SnowLineRange)

		z := e.Map.Height(t)
		above := 0
		if z > s.HighestSnowLine() {
			above = z - s.HighestSnowLine()
		} else if z < s.LowestSnowLine() {
			above = z - s.LowestSnowLine()
		}
		dist := above + 1
		if above < 0 {
			dist = -above
		}
		arctic := false
		if dist < len(occ) {
			arctic = e.Rand.Range(256) < uint32(occ[dist])
		}
		if above < 0 {
			// Mixed forest below the snow line.
			if arctic {
				return fromSeed(SpeciesSubArctic, countSubArctic, seed8)
			}
			return fromSeed(SpeciesTemperate, countTemperate, seed8)
		}
		// Above the line arctic trees thin out with height.
		if arctic {
			return fromSeed(SpeciesSubArctic, countSubArctic, seed8)
		}
		return SpeciesInvalid

	case ClimateTropic:
		switch e.Map.Zone(t) {
		case ZoneNormalTropic:
			return fromSeed(SpeciesSubTropical, countSubTropical, seed8)
		case gamemap.ZoneDesert:
			if seed8 > 12 {
				return SpeciesInvalid
			}
			return SpeciesCactus
		default:
			return fromSeed(SpeciesRainforest, countRainforest, seed8)
		}

	default:
		return fromSeed(SpeciesToyland, countToyland, seed8)
	}
}

// ZoneNormalTropic aliases the gamemap zone for readability at call sites.
const ZoneNormalTropic = gamemap.ZoneNormal

// Plant installs a vegetation cell on t. Ground cover is derived from the
// prior terrain; clear-ground density is preserved except on rough ground.
// Callers must have checked eligibility: planting on an ineligible tile or
// with an invalid species is a contract violation and panics.
func Plant(e Env, t gamemap.TileIndex, sp Species, count, growth int) {
	if sp == SpeciesInvalid {
		panic("vegetation: plant with invalid species")
	}
	if !CanPlant(e, t, true) {
		panic(fmt.Sprintf("vegetation: plant on ineligible tile %d", t))
	}

	var ground gamemap.TreeGround
	density := 3

	switch e.Map.Kind(t) {
	case gamemap.KindWater:
		ground = gamemap.TreeGroundShore

	case gamemap.KindClear:
		switch {
		case e.Map.IsSnowCovered(t):
			if e.Map.RawClearGround(t) == gamemap.ClearRough {
				ground = gamemap.TreeGroundRoughSnow
			} else {
				ground = gamemap.TreeGroundSnowDesert
			}
			density = e.Map.ClearDensity(t)
		case e.Map.RawClearGround(t) == gamemap.ClearGrass:
			ground = gamemap.TreeGroundGrass
			density = e.Map.ClearDensity(t)
		case e.Map.RawClearGround(t) == gamemap.ClearRough:
			ground = gamemap.TreeGroundRough
		default:
			ground = gamemap.TreeGroundSnowDesert
			density = e.Map.ClearDensity(t)
		}
	}

	e.Map.MakeTrees(t, uint8(sp), count, growth, ground, density)
}

// placeSeeded creates a random tree cell at t from one 32-bit draw: species
// from bits 24..31, count from bits 22..23, growth from bits 16..18. Ground
// is re-randomised afterwards unless it came out snow or shore.
func placeSeeded(e Env, t gamemap.TileIndex, r uint32) {
	sp := ChooseSpecies(e, t, rng.GB(r, 24, 8))
	if sp == SpeciesInvalid {
		return
	}

	growth := int(rng.GB(r, 16, 3))
	if growth > 6 {
		growth = 6
	}
	Plant(e, t, sp, int(rng.GB(r, 22, 2))+1, growth)

	switch e.Map.TreeGround(t) {
	case gamemap.TreeGroundSnowDesert, gamemap.TreeGroundRoughSnow, gamemap.TreeGroundShore:
	default:
		e.Map.SetTreeGroundDensity(t, gamemap.TreeGround(rng.GB(r, 28, 1)), 3)
	}
}

// SparseTreeRange is the height band in which the "perfect" placer treats
// trees as sparse, scaled from the map height limit.
func SparseTreeRange(s Settings) int {
	maxH := s.MapHeightLimit
	if maxH < 32 {
		maxH = 32
	}
	r := (4 * maxH) / 32
	if r > 8 {
		r = 8
	}
	return r
}

// MaxTreeCount is the per-cell cap under the "perfect" ruleset: rises with
// elevation, thins out above the arctic snow line.
func MaxTreeCount(e Env, t gamemap.TileIndex) int {
	z := e.Map.Height(t)

	zBased := (z*4 + SparseTreeRange(e.Settings) - 1) / SparseTreeRange(e.Settings)
	if zBased < 1 {
		zBased = 1
	}
	if e.Settings.Climate == ClimateTropic {
		zBased++
	}

	snowBased := 4
	if e.Settings.Climate == ClimateArctic {
		occ := occurrenceFor(e.Settings.SnowLineRange)
		above := z - e.Settings.HighestSnowLine()
		if above < 0 {
			above = 0
		}
		if above < len(occ) {
			snowBased = 1 + int(occ[above])*4/255
		} else {
			snowBased = 0
		}
	}

	if zBased < snowBased {
		return zBased
	}
	return snowBased
}
