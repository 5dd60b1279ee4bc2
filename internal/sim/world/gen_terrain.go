package world

import (
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/vegetation"
)

// generateTerrain lays down the base landscape before the vegetation
// pass: heights from coarse value noise, ground subtypes from a roll
// table, ponds with shore edges, and the tropic zone split.
func generateTerrain(m *gamemap.Map, cfg WorldConfig) {
	seed := cfg.Seed

	heightAt := func(x, y int) int {
		// Two octaves of region noise, blended 3:1.
		c := int(hash2(seed, floorDiv(x, 16), floorDiv(y, 16)) % uint64(cfg.MapHeightLimit))
		f := int(hash2(seed^7, floorDiv(x, 4), floorDiv(y, 4)) % uint64(cfg.MapHeightLimit))
		return (c*3 + f) / 4
	}

	for y := 0; y < m.SizeY; y++ {
		for x := 0; x < m.SizeX; x++ {
			t := m.TileXY(x, y)
			h := heightAt(x, y)
			m.SetHeight(t, h)

			roll := hash2(seed^13, x, y) % 1000
			switch {
			case roll >= 988 && h == 0:
				// Ponds sit at sea level; the odd tile has a raised
				// corner and refuses shore planting.
				m.MakeWater(t, true, roll == 999)
			case roll < 8:
				m.SetClear(t, gamemap.ClearRocks, 3)
			case roll < 24:
				m.SetClear(t, gamemap.ClearRough, 3)
			case roll < 32:
				m.SetClear(t, gamemap.ClearFields, 3)
			default:
				m.SetClear(t, gamemap.ClearGrass, 3)
			}

			switch cfg.Climate {
			case vegetation.ClimateTropic:
				// Low flats turn desert; wet regions turn rainforest.
				rz := hash2(seed^29, floorDiv(x, 32), floorDiv(y, 32)) % 3
				switch {
				case h <= 2 && rz == 0:
					m.SetZone(t, gamemap.ZoneDesert)
					if m.Kind(t) == gamemap.KindClear {
						m.SetClear(t, gamemap.ClearDesert, 3)
					}
				case rz == 1:
					m.SetZone(t, gamemap.ZoneRainforest)
				}

			case vegetation.ClimateArctic:
				if m.Kind(t) == gamemap.KindClear && h >= cfg.SnowLineHeight {
					d := h - cfg.SnowLineHeight + 1
					if d > 3 {
						d = 3
					}
					m.SetSnow(t, d)
				}
			}
		}
	}
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func hash2(seed int64, x, y int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xbf58476d1ce4e5b9)
	return mix64(v)
}
