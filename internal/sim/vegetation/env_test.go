package vegetation

import (
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
)

// testEnv builds a grass-covered map with sane defaults for the climate.
func testEnv(climate Climate, size int) Env {
	m := gamemap.New(size, size)
	for t := gamemap.TileIndex(0); int(t) < m.Size(); t++ {
		m.SetClear(t, gamemap.ClearGrass, 3)
	}
	return Env{
		Map: m,
		Settings: Settings{
			Climate:         climate,
			Placer:          PlacerOriginal,
			Spread:          SpreadAll,
			GrowthRate:      GrowthNormal,
			SnowLine:        4,
			SnowLineEnabled: climate == ClimateArctic,
			SnowLineRange:   8,
			MapHeightLimit:  16,
			PlantCost:       250,
			ClearCost:       40,
			GroundClearCost: 100,
		},
		Rand: rng.New(1337),
	}
}

// soundRecorder captures ambient sound triggers.
type soundRecorder struct {
	events []string
}

func (s *soundRecorder) PlayTileSound(name string, _ gamemap.TileIndex) {
	s.events = append(s.events, name)
}
