package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"tilehaul.ai/internal/sim/vegetation"
)

func TestLoad_ToWorldConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := []byte(`
world_id: alpine-1
size_x: 128
size_y: 128
seed: 42
tick_rate_hz: 10
climate: arctic
tree_placer: perfect
tree_spread: rainforest
growth_rate: 2
snow_line_height: 10
snow_line_enabled: true
snow_line_range: 8
plant_cost: 300
company_tree_budget: 500
`)
	if err := os.WriteFile(p, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tn, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := tn.ToWorldConfig()
	if err != nil {
		t.Fatalf("to config: %v", err)
	}

	if cfg.ID != "alpine-1" || cfg.SizeX != 128 || cfg.Seed != 42 || cfg.TickRateHz != 10 {
		t.Fatalf("basic fields: %+v", cfg)
	}
	if cfg.Climate != vegetation.ClimateArctic || cfg.Placer != vegetation.PlacerPerfect ||
		cfg.Spread != vegetation.SpreadRainforest || cfg.GrowthRate != 2 {
		t.Fatalf("enum fields: %+v", cfg)
	}
	if !cfg.SnowLineEnabled || cfg.SnowLineHeight != 10 || cfg.PlantCost != 300 || cfg.CompanyTreeBudget != 500 {
		t.Fatalf("tuning fields: %+v", cfg)
	}
}

func TestEnumDefaultsAndErrors(t *testing.T) {
	var tn Tuning
	cfg, err := tn.ToWorldConfig()
	if err != nil {
		t.Fatalf("zero tuning: %v", err)
	}
	if cfg.Climate != vegetation.ClimateTemperate || cfg.Placer != vegetation.PlacerOriginal ||
		cfg.Spread != vegetation.SpreadAll {
		t.Fatalf("defaults: %+v", cfg)
	}

	tn.Climate = "lunar"
	if _, err := tn.ToWorldConfig(); err == nil {
		t.Fatalf("unknown climate accepted")
	}
	tn.Climate = ""
	tn.Placer = "chaotic"
	if _, err := tn.ToWorldConfig(); err == nil {
		t.Fatalf("unknown placer accepted")
	}
	tn.Placer = ""
	tn.GrowthRate = 9
	if _, err := tn.ToWorldConfig(); err == nil {
		t.Fatalf("growth_rate out of range accepted")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(p, []byte("size_x: [not an int"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("malformed yaml accepted")
	}
}
