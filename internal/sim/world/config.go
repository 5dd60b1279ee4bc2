package world

import "tilehaul.ai/internal/sim/vegetation"

type WorldConfig struct {
	ID         string
	SizeX      int
	SizeY      int
	Seed       int64
	TickRateHz int

	Climate    vegetation.Climate
	Placer     vegetation.PlacerMode
	Spread     vegetation.SpreadPolicy
	GrowthRate int

	SnowLineHeight  int
	SnowLineEnabled bool
	SnowLineRange   int

	MapHeightLimit int
	InEditor       bool
	AmbientSounds  bool

	PlantCost       int64
	ClearCost       int64
	GroundClearCost int64

	// Planting allowance granted to each company on first use.
	CompanyTreeBudget int

	SnapshotEveryTicks int
}

func (c *WorldConfig) applyDefaults() {
	if c.SizeX <= 0 {
		c.SizeX = 256
	}
	if c.SizeY <= 0 {
		c.SizeY = 256
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 5
	}
	if c.MapHeightLimit <= 0 {
		c.MapHeightLimit = 32
	}
	if c.SnowLineHeight <= 0 {
		c.SnowLineHeight = 12
	}
	if c.SnowLineRange <= 0 {
		c.SnowLineRange = 8
	}
	if c.PlantCost <= 0 {
		c.PlantCost = 250
	}
	if c.ClearCost <= 0 {
		c.ClearCost = 40
	}
	if c.GroundClearCost <= 0 {
		c.GroundClearCost = 100
	}
	if c.CompanyTreeBudget <= 0 {
		c.CompanyTreeBudget = 2000
	}
	if c.SnapshotEveryTicks <= 0 {
		c.SnapshotEveryTicks = 3000
	}
}

// settings builds the per-tick immutable settings snapshot handed to every
// vegetation call.
func (c *WorldConfig) settings() vegetation.Settings {
	return vegetation.Settings{
		Climate:         c.Climate,
		Placer:          c.Placer,
		Spread:          c.Spread,
		GrowthRate:      c.GrowthRate,
		SnowLine:        c.SnowLineHeight,
		SnowLineEnabled: c.SnowLineEnabled,
		SnowLineRange:   uint8(c.SnowLineRange),
		MapHeightLimit:  c.MapHeightLimit,
		InEditor:        c.InEditor,
		AmbientSounds:   c.AmbientSounds,
		PlantCost:       c.PlantCost,
		ClearCost:       c.ClearCost,
		GroundClearCost: c.GroundClearCost,
	}
}
