package vegetation

import (
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
)

// ProgressSink receives world-generation progress for UI feedback. Calls
// must not fail and carry no return value.
type ProgressSink interface {
	SetTotal(category string, total int)
	Report(category string, increment int)
}

const ProgressTrees = "TREES"

// NopProgress discards progress reports.
type NopProgress struct{}

func (NopProgress) SetTotal(string, int) {}
func (NopProgress) Report(string, int)   {}

const (
	defaultTreeSteps     = 1000
	rainforestTreeSteps  = 15000
	editorTreeDivisor    = 5
	groupRadiusManhattan = 13
)

// scaleByMapSize scales an attempt budget tuned for a 256x256 map to the
// actual map area.
func scaleByMapSize(m *gamemap.Map, n int) int {
	v := n * m.Size() / (256 * 256)
	if v < 1 {
		v = 1
	}
	return v
}

// Generate seeds a freshly created map with vegetation according to the
// configured placer mode.
func Generate(e Env, progress ProgressSink) {
	if progress == nil {
		progress = NopProgress{}
	}
	s := e.Settings
	if s.Placer == PlacerNone {
		return
	}

	rounds := 0
	switch s.Placer {
	case PlacerOriginal:
		rounds = 6
		if s.Climate == ClimateArctic {
			rounds = 15
		}
	case PlacerImproved, PlacerPerfect:
		rounds = 2
		if s.Climate == ClimateArctic {
			rounds = 4
		}
	}

	total := scaleByMapSize(e.Map, defaultTreeSteps)
	if s.Climate == ClimateTropic {
		total += scaleByMapSize(e.Map, rainforestTreeSteps)
	}
	total *= rounds

	numGroups := 0
	if s.Climate != ClimateToyland {
		numGroups = scaleByMapSize(e.Map, int(rng.GB(e.Rand.Next(), 0, 5))+25)
	}
	if s.Placer != PlacerPerfect {
		total += numGroups * defaultTreeSteps
	}

	progress.SetTotal(ProgressTrees, total)

	if s.Placer != PlacerPerfect && numGroups != 0 {
		placeGroups(e, numGroups, progress)
	}

	for ; rounds > 0; rounds-- {
		placeRandomly(e, progress)
	}
}

// placeRandomly is the scatter pass: uniform random tiles, plus extra
// same-height trees proportional to elevation under improved/perfect
// modes, tripled above the arctic snow line. A relaxed rainforest-only
// pass follows in tropical climate.
func placeRandomly(e Env, progress ProgressSink) {
	s := e.Settings

	i := scaleByMapSize(e.Map, defaultTreeSteps)
	if s.InEditor {
		i /= editorTreeDivisor
	}
	for ; i > 0; i-- {
		r := e.Rand.Next()
		t := e.Map.RandomTile(r)

		progress.Report(ProgressTrees, 1)

		if !CanPlant(e, t, true) {
			continue
		}
		placeSeeded(e, t, r)
		if s.Placer != PlacerImproved && s.Placer != PlacerPerfect {
			continue
		}

		// The higher the tile, the denser the stand around it.
		ht := e.Map.Height(t)
		j := ht * 2
		if s.Climate == ClimateArctic && ht > s.SnowLine {
			j *= 3
		}
		for ; j > 0; j-- {
			if dst := findSameHeightPosition(e, t, ht, defaultTreeSteps); dst != gamemap.InvalidTile {
				placeSeeded(e, dst, e.Rand.Next())
			}
		}
	}

	if s.Climate == ClimateTropic {
		i = scaleByMapSize(e.Map, rainforestTreeSteps)
		if s.InEditor {
			i /= editorTreeDivisor
		}
		for ; i > 0; i-- {
			r := e.Rand.Next()
			t := e.Map.RandomTile(r)

			progress.Report(ProgressTrees, 1)

			if e.Map.Zone(t) == gamemap.ZoneRainforest && CanPlant(e, t, false) {
				placeSeeded(e, t, r)
			}
		}
	}
}

// placeGroups plants clustered stands: a random centre, then a fixed
// number of nearby attempts biased toward the centre by a Manhattan
// distance cut-off.
func placeGroups(e Env, numGroups int, progress ProgressSink) {
	for ; numGroups > 0; numGroups-- {
		center := e.Map.RandomTile(e.Rand.Next())

		for i := 0; i < defaultTreeSteps; i++ {
			r := e.Rand.Next()
			dx := int(rng.GB(r, 0, 5)) - 16
			dy := int(rng.GB(r, 8, 5)) - 16
			cur := e.Map.AddWrap(center, dx, dy)

			progress.Report(ProgressTrees, 1)

			if cur != gamemap.InvalidTile && absInt(dx)+absInt(dy) <= groupRadiusManhattan && CanPlant(e, cur, true) {
				placeSeeded(e, cur, r)
			}
		}
	}
}
