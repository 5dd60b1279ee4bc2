package vegetation

import (
	"tilehaul.ai/internal/protocol"
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
)

// Flags distinguishes the trial pass from the execute pass of the
// two-phase command protocol. Without FlagExecute no state is mutated.
type Flags uint8

const FlagExecute Flags = 1 << 0

func (f Flags) exec() bool { return f&FlagExecute != 0 }

// CommandError is a recoverable, user-visible validation failure carrying
// a protocol error code.
type CommandError struct {
	Code string
	Msg  string
}

func (e *CommandError) Error() string { return e.Code + ": " + e.Msg }

func cmdErr(code, msg string) *CommandError { return &CommandError{Code: code, Msg: msg} }

// Budget is a per-company tree-planting allowance. A nil *Budget means
// unlimited (editor and scripts).
type Budget struct {
	Remaining int
}

// PlantArea validates and (with FlagExecute) applies a plant command over
// the rectangle spanned by start and end. sp == SpeciesInvalid requests a
// random climate-appropriate species per tile. Partial success is
// per-tile: tiles committed before a failing tile stay committed, and the
// aggregate cost of all processed tiles is returned. When no tile could
// be processed the last per-tile failure is returned.
func PlantArea(e Env, start, end gamemap.TileIndex, sp Species, budget *Budget, flags Flags) (int64, error) {
	if !e.Map.Valid(start) || !e.Map.Valid(end) {
		return 0, cmdErr(protocol.ErrBadRequest, "tile out of range")
	}
	if sp != SpeciesInvalid && !ValidForClimate(sp, e.Settings.Climate) {
		return 0, cmdErr(protocol.ErrBadRequest, "species not in climate range")
	}

	limit := int(^uint32(0) >> 1)
	if budget != nil {
		limit = budget.Remaining
	}

	var cost int64
	var lastErr *CommandError

	sx, sy := e.Map.XY(start)
	ex, ey := e.Map.XY(end)
	if ex < sx {
		sx, ex = ex, sx
	}
	if ey < sy {
		sy, ey = ey, sy
	}

area:
	for y := sy; y <= ey; y++ {
		for x := sx; x <= ex; x++ {
			t := e.Map.TileXY(x, y)

			switch e.Map.Kind(t) {
			case gamemap.KindTrees:
				growInstead := false
				if e.Settings.Placer == PlacerPerfect {
					if e.Map.TreeCount(t) >= 4 ||
						(Species(e.Map.TreeSpecies(t)) != SpeciesCactus && e.Map.TreeCount(t) >= MaxTreeCount(e, t)) {
						if e.Map.TreeGrowth(t) < 3 {
							growInstead = true
						} else {
							lastErr = cmdErr(protocol.ErrAlreadyPlanted, "tile already fully planted")
							continue
						}
					}
				} else if e.Map.TreeCount(t) == 4 {
					lastErr = cmdErr(protocol.ErrAlreadyPlanted, "tile already fully planted")
					continue
				}

				limit--
				if limit < 1 {
					lastErr = cmdErr(protocol.ErrPlantLimit, "tree plant limit reached")
					break area
				}

				if flags.exec() {
					if growInstead {
						e.Map.SetTreeGrowth(t, 3)
					} else {
						e.Map.AddTreeCount(t, 1)
					}
					if budget != nil {
						budget.Remaining--
					}
				}
				// Densifying an existing stand costs double.
				cost += e.Settings.PlantCost * 2

			case gamemap.KindWater:
				if !CanPlant(e, t, false) {
					lastErr = cmdErr(protocol.ErrOnWater, "cannot plant on open water")
					continue
				}
				c, err := plantOnGround(e, t, sp, budget, flags, &limit)
				cost += c
				if err != nil {
					lastErr = err
					if err.Code == protocol.ErrPlantLimit {
						break area
					}
				}

			case gamemap.KindClear:
				c, err := plantOnGround(e, t, sp, budget, flags, &limit)
				cost += c
				if err != nil {
					lastErr = err
					if err.Code == protocol.ErrPlantLimit {
						break area
					}
				}

			default:
				lastErr = cmdErr(protocol.ErrSiteUnsuitable, "terrain unsuitable")
			}

			if limit < 0 {
				break area
			}
		}
	}

	if cost == 0 {
		if lastErr == nil {
			lastErr = cmdErr(protocol.ErrSiteUnsuitable, "terrain unsuitable")
		}
		return 0, lastErr
	}
	return cost, nil
}

// plantOnGround handles the clear/coastal tile branch of PlantArea.
func plantOnGround(e Env, t gamemap.TileIndex, sp Species, budget *Budget, flags Flags, limit *int) (int64, *CommandError) {
	if !CanPlant(e, t, false) {
		return 0, cmdErr(protocol.ErrSiteUnsuitable, "terrain unsuitable")
	}

	// Be picky about which trees go where in the tropics.
	if e.Settings.Climate == ClimateTropic && sp != SpeciesInvalid {
		zone := e.Map.Zone(t)
		switch {
		case sp == SpeciesCactus && zone != gamemap.ZoneDesert:
			return 0, cmdErr(protocol.ErrWrongSpecies, "cacti grow only in the desert")
		case IsRainforestSpecies(sp) && zone != gamemap.ZoneRainforest && !e.Settings.InEditor:
			return 0, cmdErr(protocol.ErrWrongSpecies, "rainforest trees grow only in the rainforest")
		case IsSubTropicalSpecies(sp) && zone != ZoneNormalTropic:
			return 0, cmdErr(protocol.ErrWrongSpecies, "wrong terrain for tree type")
		}
	}

	*limit = *limit - 1
	if *limit < 1 {
		return 0, cmdErr(protocol.ErrPlantLimit, "tree plant limit reached")
	}

	var cost int64

	// Obstructing farmland or rocks are cleared first at a sub-cost.
	if e.Map.Kind(t) == gamemap.KindClear {
		switch e.Map.RawClearGround(t) {
		case gamemap.ClearFields, gamemap.ClearRocks:
			cost += e.Settings.GroundClearCost
			if flags.exec() {
				e.Map.SetClear(t, gamemap.ClearGrass, 0)
			}
		}
	}

	if flags.exec() {
		planted := sp
		if planted == SpeciesInvalid {
			planted = ChooseSpecies(e, t, rng.GB(e.Rand.Next(), 24, 8))
			if planted == SpeciesInvalid {
				planted = fallbackSpecies(e, t)
			}
		}

		// Scenario editing plants full-grown trees.
		growth := 0
		if e.Settings.InEditor {
			growth = 3
		}
		Plant(e, t, planted, 1, growth)
		if budget != nil {
			budget.Remaining--
		}

		// Rainforest planting in the editor stamps the zone.
		if e.Settings.InEditor && IsRainforestSpecies(planted) {
			e.Map.SetZone(t, gamemap.ZoneRainforest)
		}
	}
	return cost + e.Settings.PlantCost, nil
}

// fallbackSpecies covers the sparse outcomes of a random-species request:
// the engine owes the player a tree even where the distribution would
// leave the tile empty.
func fallbackSpecies(e Env, t gamemap.TileIndex) Species {
	s := e.Settings
	if s.SnowLineEnabled && s.Climate == ClimateArctic {
		seed := rng.GB(e.Rand.Next(), 24, 8)
		if e.Map.Height(t) <= s.SnowLine {
			return fromSeed(SpeciesTemperate, countTemperate, seed)
		}
		return fromSeed(SpeciesSubArctic, countSubArctic, seed)
	}
	return SpeciesCactus
}

// ClearVegetation removes a vegetation cell, charging per tree; clearing
// rainforest species costs quadruple. The tile reverts to bare grass.
func ClearVegetation(e Env, t gamemap.TileIndex, flags Flags) (int64, error) {
	if e.Map.Kind(t) != gamemap.KindTrees {
		return 0, cmdErr(protocol.ErrSiteUnsuitable, "no trees here")
	}
	n := int64(e.Map.TreeCount(t))
	if IsRainforestSpecies(Species(e.Map.TreeSpecies(t))) {
		n *= 4
	}
	if flags.exec() {
		e.Map.SetClear(t, gamemap.ClearGrass, 3)
	}
	return n * e.Settings.ClearCost, nil
}

// RemoveAll is the editor bulk clear: one clear command per vegetation
// tile on the map. Returns the number of tiles cleared.
func RemoveAll(e Env) int {
	if !e.Settings.InEditor {
		return 0
	}
	cleared := 0
	for t := gamemap.TileIndex(0); int(t) < e.Map.Size(); t++ {
		if e.Map.Kind(t) != gamemap.KindTrees {
			continue
		}
		if _, err := ClearVegetation(e, t, FlagExecute); err == nil {
			cleared++
		}
	}
	return cleared
}

// PlaceGroupAround places up to count trees in a quasi-normal distribution
// (sum of four uniform bytes per axis) within [-radius, radius) of center,
// topping up existing under-capacity cells before creating new ones.
// ir must be the interactive random stream: this routine is editor/script
// only and is excluded from the simulation determinism contract. With
// setZone, surrounding tiles inside the radius are stamped rainforest.
func PlaceGroupAround(e Env, center gamemap.TileIndex, sp Species, radius, count int, setZone bool, ir Random) int {
	if sp >= SpeciesEnd {
		panic("vegetation: species out of range")
	}
	allowDesert := sp == SpeciesCactus
	planted := 0

	mkcoord := func() int {
		r := ir.Next()
		dist := int(rng.GB(r, 0, 8) + rng.GB(r, 8, 8) + rng.GB(r, 16, 8) + rng.GB(r, 24, 8))
		return dist*radius/512 - radius
	}

	for ; count > 0; count-- {
		t := e.Map.AddWrap(center, mkcoord(), mkcoord())
		if t == gamemap.InvalidTile {
			continue
		}
		switch {
		case e.Map.Kind(t) == gamemap.KindTrees && e.Map.TreeCount(t) < 4:
			e.Map.AddTreeCount(t, 1)
			e.Map.SetTreeGrowth(t, 0)
			planted++
		case CanPlant(e, t, allowDesert):
			Plant(e, t, sp, 1, 3)
			planted++
		}
	}

	if setZone && IsRainforestSpecies(sp) {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				t := e.Map.AddWrap(center, dx, dy)
				if t != gamemap.InvalidTile && e.Map.DistanceSquare(center, t) < radius*radius {
					e.Map.SetZone(t, gamemap.ZoneRainforest)
				}
			}
		}
	}

	return planted
}
