package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tilehaul.ai/internal/sim/vegetation"
	"tilehaul.ai/internal/sim/world"
)

// Tuning is the operator-facing world configuration, loaded from YAML.
// Enum-valued fields use names ("arctic", "perfect") and map onto the
// typed config through ToWorldConfig.
type Tuning struct {
	WorldID    string `yaml:"world_id"`
	SizeX      int    `yaml:"size_x"`
	SizeY      int    `yaml:"size_y"`
	Seed       int64  `yaml:"seed"`
	TickRateHz int    `yaml:"tick_rate_hz"`

	Climate    string `yaml:"climate"`
	Placer     string `yaml:"tree_placer"`
	Spread     string `yaml:"tree_spread"`
	GrowthRate int    `yaml:"growth_rate"`

	SnowLineHeight  int  `yaml:"snow_line_height"`
	SnowLineEnabled bool `yaml:"snow_line_enabled"`
	SnowLineRange   int  `yaml:"snow_line_range"`
	MapHeightLimit  int  `yaml:"map_height_limit"`
	InEditor        bool `yaml:"in_editor"`
	AmbientSounds   bool `yaml:"ambient_sounds"`

	PlantCost       int64 `yaml:"plant_cost"`
	ClearCost       int64 `yaml:"clear_cost"`
	GroundClearCost int64 `yaml:"ground_clear_cost"`

	CompanyTreeBudget  int `yaml:"company_tree_budget"`
	SnapshotEveryTicks int `yaml:"snapshot_every_ticks"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func ParseClimate(s string) (vegetation.Climate, error) {
	switch s {
	case "", "temperate":
		return vegetation.ClimateTemperate, nil
	case "arctic":
		return vegetation.ClimateArctic, nil
	case "tropic":
		return vegetation.ClimateTropic, nil
	case "toyland":
		return vegetation.ClimateToyland, nil
	}
	return 0, fmt.Errorf("unknown climate %q", s)
}

func ParsePlacer(s string) (vegetation.PlacerMode, error) {
	switch s {
	case "none":
		return vegetation.PlacerNone, nil
	case "", "original":
		return vegetation.PlacerOriginal, nil
	case "improved":
		return vegetation.PlacerImproved, nil
	case "perfect":
		return vegetation.PlacerPerfect, nil
	}
	return 0, fmt.Errorf("unknown tree_placer %q", s)
}

func ParseSpread(s string) (vegetation.SpreadPolicy, error) {
	switch s {
	case "none":
		return vegetation.SpreadNone, nil
	case "rainforest":
		return vegetation.SpreadRainforest, nil
	case "", "all":
		return vegetation.SpreadAll, nil
	case "frozen":
		return vegetation.SpreadFrozen, nil
	}
	return 0, fmt.Errorf("unknown tree_spread %q", s)
}

// ToWorldConfig resolves enum names and hands back the typed config.
// Zero-valued fields are filled by the world's own defaults.
func (t Tuning) ToWorldConfig() (world.WorldConfig, error) {
	climate, err := ParseClimate(t.Climate)
	if err != nil {
		return world.WorldConfig{}, err
	}
	placer, err := ParsePlacer(t.Placer)
	if err != nil {
		return world.WorldConfig{}, err
	}
	spread, err := ParseSpread(t.Spread)
	if err != nil {
		return world.WorldConfig{}, err
	}
	if t.GrowthRate < vegetation.GrowthNormal || t.GrowthRate > vegetation.GrowthFrozen {
		return world.WorldConfig{}, fmt.Errorf("growth_rate %d out of range", t.GrowthRate)
	}

	return world.WorldConfig{
		ID:         t.WorldID,
		SizeX:      t.SizeX,
		SizeY:      t.SizeY,
		Seed:       t.Seed,
		TickRateHz: t.TickRateHz,

		Climate:    climate,
		Placer:     placer,
		Spread:     spread,
		GrowthRate: t.GrowthRate,

		SnowLineHeight:  t.SnowLineHeight,
		SnowLineEnabled: t.SnowLineEnabled,
		SnowLineRange:   t.SnowLineRange,
		MapHeightLimit:  t.MapHeightLimit,
		InEditor:        t.InEditor,
		AmbientSounds:   t.AmbientSounds,

		PlantCost:       t.PlantCost,
		ClearCost:       t.ClearCost,
		GroundClearCost: t.GroundClearCost,

		CompanyTreeBudget:  t.CompanyTreeBudget,
		SnapshotEveryTicks: t.SnapshotEveryTicks,
	}, nil
}
