package vegetation

import (
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
)

// Seeder plants new run-time trees on empty tiles at a map-size-scaled
// rate: rainforest zones reseed continuously, everywhere else depends on
// the spread policy. One Seeder lives in the world and steps once per
// tick.
type Seeder struct {
	ctr uint8
}

func (sd *Seeder) Counter() uint8 { return sd.ctr }

func (sd *Seeder) Restore(ctr uint8) { sd.ctr = ctr }

// decrement scales the attempt counter by map size so tree density stays
// constant across map sizes. Maps below 256x256 accumulate fractional
// attempts through byte underflow.
func (sd *Seeder) decrement(m *gamemap.Map) int {
	scaled := scaleByMapSize(m, 1)
	if scaled >= 256 {
		return scaled >> 8
	}
	old := sd.ctr
	sd.ctr -= uint8(scaled)
	if old <= sd.ctr {
		return 1
	}
	return 0
}

// Step runs the per-tick seeding pass.
func (sd *Seeder) Step(e Env, tick uint64) {
	s := e.Settings
	if s.Spread == SpreadNone || s.Spread == SpreadFrozen {
		return
	}

	// Small maps skip ticks instead of planting fractions of a tree.
	skip := scaleByMapSize(e.Map, 16)
	if skip < 16 && tick&uint64(16/skip-1) != 0 {
		return
	}

	if s.Climate == ClimateTropic {
		for c := scaleByMapSize(e.Map, 1); c > 0; c-- {
			r := e.Rand.Next()
			t := e.Map.RandomTile(r)
			if e.Map.Zone(t) != gamemap.ZoneRainforest || !CanPlant(e, t, false) {
				continue
			}
			if sp := ChooseSpecies(e, t, rng.GB(r, 24, 8)); sp != SpeciesInvalid {
				Plant(e, t, sp, 1, 0)
			}
		}
	}

	if s.Spread == SpreadRainforest {
		return
	}

	for n := sd.decrement(e.Map); n > 0; n-- {
		r := e.Rand.Next()
		t := e.Map.RandomTile(r)
		if !CanPlant(e, t, false) {
			continue
		}
		if sp := ChooseSpecies(e, t, rng.GB(r, 24, 8)); sp != SpeciesInvalid {
			Plant(e, t, sp, 1, 0)
		}
	}
}
